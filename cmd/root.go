package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bookshell",
	Short: "Serve a markdown folder as a gitbook-style site",
	Long: `Bookshell renders a folder of markdown posts as a two-sidebar,
gitbook-style site: navigation on one side, article details on the other,
and the page in between. Serve it live while writing, or build it into
static HTML.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".bookshell.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

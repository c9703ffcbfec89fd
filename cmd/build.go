package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/progress"
	"github.com/ziadkadry99/bookshell/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static HTML",
	Long:  `Renders every page of the site, the assets and a search index into an output directory that any static file server can host.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory (defaults to {data_dir}/site)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = filepath.Join(cfg.DataDir, "site")
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := context.Background()
	if _, err := loadContent(ctx, cfg, newLoader(cfg, database)); err != nil {
		return err
	}

	exporter := site.NewExporter(cfg, content.NewStore(database), outputDir)
	exporter.Reporter = progress.NewReporter()
	summary, err := exporter.Export(ctx)
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, summary.Written)
	if len(summary.Skipped) > 0 {
		fmt.Printf("Skipped %d pages with unusable names; check slugs, categories and tags.\n", len(summary.Skipped))
	}
	return nil
}

package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to bookshell! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Site.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Site.Title = title

	// 2. Content directory.
	dirPrompt := promptui.Prompt{
		Label:   "Content directory (markdown with front matter)",
		Default: cfg.Content.Dir,
	}
	dir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.Content.Dir = dir

	// 3. Landing slug.
	slugPrompt := promptui.Prompt{
		Label:   "Slug of the landing page",
		Default: cfg.Theme.IndexPage,
	}
	slug, err := slugPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("index page: %w", err)
	}
	cfg.Theme.IndexPage = slug

	// 4. Sidebar side.
	sidePrompt := promptui.Select{
		Label: "Navigation sidebar position",
		Items: []string{"left", "right"},
	}
	sideIdx, _, err := sidePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("sidebar position: %w", err)
	}
	cfg.Theme.LayoutSidebarReverse = sideIdx == 1

	// 5. Port.
	portPrompt := promptui.Prompt{
		Label:    "Server port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n <= 0 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

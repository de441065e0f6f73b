package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/nodescape/internal/scene"
)

// RunWizard asks for the common settings, saves the result to path and
// returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to nodescape! Let's configure your site.")
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

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Site.Port),
		Validate: intBetween(1, 65535),
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Site.Port, _ = strconv.Atoi(portStr)

	// 3. Node count.
	nodesPrompt := promptui.Prompt{
		Label:    "Number of floating nodes",
		Default:  strconv.Itoa(cfg.Scene.NodeCount),
		Validate: intBetween(1, 256),
	}
	nodesStr, err := nodesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("node count: %w", err)
	}
	cfg.Scene.NodeCount, _ = strconv.Atoi(nodesStr)

	// 4. Containment.
	containPrompt := promptui.Select{
		Label: "Boundary behaviour",
		Items: []string{
			"hard — clamp and bounce off the walls",
			"soft — drift out and get pulled back",
		},
	}
	containIdx, _, err := containPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("containment: %w", err)
	}
	cfg.Scene.Containment = []scene.Containment{scene.ContainmentHard, scene.ContainmentSoft}[containIdx]

	// 5. Hit testing.
	hitPrompt := promptui.Select{
		Label: "Pointer targets",
		Items: []string{
			"nodes    — hover the node boxes",
			"overlays — hover the label text",
		},
	}
	hitIdx, _, err := hitPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("hit mode: %w", err)
	}
	cfg.Scene.HitMode = []scene.HitMode{scene.HitNodes, scene.HitOverlays}[hitIdx]

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func intBetween(lo, hi int) promptui.ValidateFunc {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("not a number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

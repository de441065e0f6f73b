package cmd

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/ziadkadry99/nodescape/internal/config"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	warn   = color.New(color.FgYellow)
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `nodescape init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// detail prints an indented "key: value" status line.
func detail(key string, value any) {
	fmt.Printf("  %s %v\n", subtle.Sprintf("%-10s", key+":"), value)
}

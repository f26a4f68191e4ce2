package cli

import (
	"context"
	"fmt"

	"github.com/kilnworks/rpmkiln/internal/config"
)

// Represents the 'rpmkiln platforms' command.
type PlatformsCmd struct{}

// Executes the platforms command, listing the platform table.
//
// The selected platform is marked with an asterisk.
func (c *PlatformsCmd) Run(ctx context.Context) error {
	cfg, err := config.Load(RootCmd.Config)
	if err != nil {
		return err
	}

	for _, id := range cfg.PlatformIDs() {
		marker := " "
		if id == cfg.Platform {
			marker = "*"
		}
		fmt.Printf("%s %-12s %s\n", marker, id, cfg.Platforms[id].Base)
	}
	return nil
}

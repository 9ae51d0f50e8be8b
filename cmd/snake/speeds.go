package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var speedsCmd = &cobra.Command{
	Use:   "speeds",
	Short: "List speed presets",
	Long:  `List the configured speed presets, fastest first.`,
	Args:  cobra.NoArgs,
	Run:   runSpeeds,
}

func runSpeeds(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	fmt.Println("Speed presets:")
	fmt.Println()
	for _, name := range cfg.SpeedNames() {
		interval, err := cfg.Interval(name)
		if err != nil {
			fail("%v", err)
		}
		marker := ""
		if name == cfg.Speed.Default {
			marker = " (default)"
		}
		fmt.Printf("  %-10s  %s per tick%s\n", name, interval, marker)
	}
	fmt.Println()
	fmt.Println("Use 'snake play --speed <name>' to pick one.")
}

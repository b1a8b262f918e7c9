package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bs-replay/internal/registry"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List available views",
	Long:  `Shows the ways the scene can be projected onto the terminal.`,
	Run:   runViews,
}

func runViews(cmd *cobra.Command, args []string) {
	views := registry.List()

	if len(views) == 0 {
		fmt.Println("No views available.")
		return
	}

	fmt.Println("Available views:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range views {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, v := range views {
		fmt.Printf("  %-*s  %s\n", maxIDLen, v.ID, v.Title)
	}

	fmt.Println()
	fmt.Println("Run 'bsreplay play <file> --view <id>' to use a view.")
}

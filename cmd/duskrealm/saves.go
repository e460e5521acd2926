package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veilgate/duskrealm/internal/infrastructure/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	Long: `Display all save slots, most recently written first.

Examples:
  duskrealm saves
  duskrealm saves delete slot1`,
	Run: runSaves,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	Run:   runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesDeleteCmd)
}

func runSaves(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("failed to open save database", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List()
	if err != nil {
		fatal("failed to list saves", err)
	}

	if len(entries) == 0 {
		fmt.Println("No saves yet. Start one with: duskrealm play")
		return
	}

	fmt.Printf("%-12s %-16s %-8s %-6s %s\n", "SLOT", "WORLD", "HEALTH", "GOLD", "UPDATED")
	for _, e := range entries {
		fmt.Printf("%-12s %-16s %-8d %-6d %s\n",
			e.Slot, e.World, e.Health, e.Gold, e.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func runSavesDelete(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("failed to open save database", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Delete(args[0]); err != nil {
		fatal("failed to delete save", err)
	}
	fmt.Printf("Deleted slot %q\n", args[0])
}

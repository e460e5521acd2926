// duskrealm is a top-down action game about a realm split between day
// and eclipse.
//
// Usage:
//
//	duskrealm play              - Start a new game
//	duskrealm play --load slot  - Continue a saved game
//	duskrealm saves             - List save slots
//
// Global flags:
//
//	--db <path>      - Save database path (default: ~/.duskrealm/saves.db)
//	--config <dir>   - Directory with game.yaml/world.yaml (default: embedded)
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/veilgate/duskrealm/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

var (
	// Global flags
	flagDBPath    string
	flagConfigDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duskrealm",
	Short: "Duskrealm - explore a world split between day and eclipse",
	Long: `Duskrealm is a top-down action game. Explore the overworld, fight
what patrols it, and shift between the Dayrealm and the Eclipse to
reshape the terrain around you.

Examples:
  duskrealm play
  duskrealm play --seed 42 --record run.json
  duskrealm play --replay run.json
  duskrealm play --load slot1
  duskrealm saves`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.duskrealm/saves.db", "Path to save database")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "Directory with game.yaml/world.yaml (default: embedded)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(savesCmd)
}

// loadConfigs builds a loader over either the embedded configs or a
// user-supplied directory
func loadConfigs() (*config.Bundle, error) {
	var loader *config.Loader
	if flagConfigDir != "" {
		loader = config.NewLoader(flagConfigDir)
	} else {
		sub, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, fmt.Errorf("embedded configs: %w", err)
		}
		loader = config.NewFSLoader(sub)
	}
	return loader.LoadAll()
}

func fatal(msg string, err error) {
	log.Error(msg, "err", err)
	os.Exit(1)
}

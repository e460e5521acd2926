package main

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/veilgate/duskrealm/internal/application/game"
	"github.com/veilgate/duskrealm/internal/application/replay"
	"github.com/veilgate/duskrealm/internal/application/scene/playing"
	"github.com/veilgate/duskrealm/internal/application/sim"
	"github.com/veilgate/duskrealm/internal/audio"
	"github.com/veilgate/duskrealm/internal/event"
	"github.com/veilgate/duskrealm/internal/infrastructure/storage"
)

var (
	flagSeed    int64
	flagRecord  string
	flagReplay  string
	flagLoad    string
	flagSlot    string
	flagNoAudio bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Start the game.

Controls:
  WASD/Arrows - Move
  Space/J     - Attack
  E           - Shift realm
  F5          - Save
  ESC         - Pause
  Z           - Restart (after death)

Examples:
  duskrealm play
  duskrealm play --seed 42
  duskrealm play --record run.json
  duskrealm play --replay run.json
  duskrealm play --load slot1 --slot slot1`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "World seed (0 = random based on time)")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record input to file")
	playCmd.Flags().StringVar(&flagReplay, "replay", "", "Replay input from file")
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Load the named save slot")
	playCmd.Flags().StringVar(&flagSlot, "slot", "slot1", "Save slot written by F5 and on exit")
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable sound")
}

func runPlay(cmd *cobra.Command, args []string) {
	bundle, err := loadConfigs()
	if err != nil {
		fatal("failed to load config", err)
	}
	cfg, worldCfg := bundle.Game, bundle.World

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("failed to open save database", err)
	}
	defer func() { _ = store.Close() }()

	opts := playing.Options{
		Seed:       flagSeed,
		RecordPath: flagRecord,
		OnSave: func(snap sim.Snapshot) error {
			return store.Save(flagSlot, worldCfg.Name, snap)
		},
	}

	if flagReplay != "" {
		data, err := replay.Load(flagReplay)
		if err != nil {
			fatal("failed to load replay", err)
		}
		opts.Replayer = replay.NewReplayer(data)
		log.Info("replaying", "path", flagReplay, "seed", data.Seed, "frames", len(data.Frames))
	}

	if flagLoad != "" {
		snap, world, err := store.Load(flagLoad)
		if err != nil {
			fatal("failed to load save", err)
		}
		if world != worldCfg.Name {
			log.Warn("save was made for a different world", "save", world, "current", worldCfg.Name)
		}
		opts.Seed = snap.Seed
		opts.Restore = &snap
		log.Info("loaded save", "slot", flagLoad, "seed", snap.Seed, "gold", snap.Gold)
	}

	bus := event.NewBus()
	bus.Subscribe(func(ev event.Event) {
		log.Debug("event", "kind", ev.Kind.String(), "value", ev.Value)
	})

	if !flagNoAudio {
		sink := audio.NewSink()
		sink.Init()
		sink.Attach(bus)
		defer sink.Close()
	}

	scn, err := playing.New(cfg, worldCfg, bus, opts)
	if err != nil {
		fatal("failed to start game", err)
	}

	g := game.New(scn, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)

	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale,
		cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle("Duskrealm")
	ebiten.SetTPS(cfg.Display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		fatal("game terminated", err)
	}
}

// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/veilgate/duskrealm/internal/application/replay"
	"github.com/veilgate/duskrealm/internal/application/scene"
	"github.com/veilgate/duskrealm/internal/application/sim"
	"github.com/veilgate/duskrealm/internal/application/state"
	"github.com/veilgate/duskrealm/internal/application/system"
	"github.com/veilgate/duskrealm/internal/domain/entity"
	"github.com/veilgate/duskrealm/internal/event"
	"github.com/veilgate/duskrealm/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorFog      = color.RGBA{12, 12, 20, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorEnemy    = color.RGBA{200, 100, 100, 255}
	colorFlash    = color.RGBA{255, 255, 255, 200}
	colorSwing    = color.RGBA{255, 240, 120, 120}
	colorHealthBG = color.RGBA{60, 60, 60, 255}
	colorHealthFG = color.RGBA{100, 200, 100, 255}
)

var dayColors = map[entity.TileType]color.RGBA{
	entity.TileGrass:    {86, 152, 74, 255},
	entity.TileWater:    {52, 104, 180, 255},
	entity.TileForest:   {38, 96, 48, 255},
	entity.TileMountain: {120, 112, 104, 255},
	entity.TileDesert:   {214, 190, 120, 255},
	entity.TileSnow:     {230, 236, 244, 255},
	entity.TileMarsh:    {84, 96, 58, 255},
	entity.TileVolcanic: {96, 44, 36, 255},
	entity.TileWall:     {70, 70, 86, 255},
	entity.TileDoor:     {150, 104, 58, 255},
	entity.TileBridge:   {158, 116, 72, 255},
	entity.TilePath:     {176, 156, 110, 255},
	entity.TileHouse:    {132, 88, 56, 255},
	entity.TileShrine:   {110, 78, 140, 255},
	entity.TileChest:    {184, 138, 46, 255},
	entity.TileFlower:   {170, 120, 180, 255},
	entity.TileFloor:    {142, 126, 100, 255},
}

// Options configures a Playing scene beyond the two config files.
type Options struct {
	Seed       int64
	RecordPath string
	Replayer   *replay.Replayer
	Restore    *sim.Snapshot
	// OnSave persists a snapshot; called on exit and on demand (F5).
	// Nil disables saving.
	OnSave func(sim.Snapshot) error
}

// Playing is the main gameplay scene
type Playing struct {
	cfg      *config.GameConfig
	worldCfg *config.WorldConfig
	bus      *event.Bus
	sim      *sim.Simulation
	input    *system.Input
	state    state.GameState
	screenW  int
	screenH  int
	seed     int64

	recorder       *replay.Recorder
	recordFilename string
	replayer       *replay.Replayer
	onSave         func(sim.Snapshot) error
}

// New creates a new Playing scene. bus carries gameplay events to any
// subscribed sinks (audio, logging); it is reused across restarts.
func New(cfg *config.GameConfig, worldCfg *config.WorldConfig, bus *event.Bus, opts Options) (*Playing, error) {
	seed := opts.Seed
	if opts.Replayer != nil {
		seed = opts.Replayer.Seed()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s, err := sim.New(cfg, worldCfg, seed, bus)
	if err != nil {
		return nil, err
	}
	if opts.Restore != nil {
		s.Restore(*opts.Restore)
	}

	p := &Playing{
		cfg:            cfg,
		worldCfg:       worldCfg,
		bus:            bus,
		sim:            s,
		input:          system.NewInput(),
		state:          state.StatePlaying,
		screenW:        cfg.Display.ScreenWidth,
		screenH:        cfg.Display.ScreenHeight,
		seed:           seed,
		recordFilename: opts.RecordPath,
		replayer:       opts.Replayer,
		onSave:         opts.OnSave,
	}

	if opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(seed, worldCfg.Name)
		log.Info("recording enabled", "path", opts.RecordPath, "seed", seed)
	}
	return p, nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(rawDelta float64) (scene.Scene, error) {
	switch p.state {
	case state.StatePlaying:
		p.updatePlaying(rawDelta)
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	case state.StateGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := p.restart(); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

func (p *Playing) updatePlaying(rawDelta float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.state = state.StatePaused
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		p.saveGame()
	}

	var in system.InputState
	if p.replayer != nil {
		// Playback substitutes the recorded raw delta for the live
		// wall-clock one; positions and timers then evolve exactly as
		// in the recorded session.
		if rin, rdt, ok := p.replayer.Next(); ok {
			in, rawDelta = rin, rdt
		} else {
			in = system.InputState{}
		}
	} else {
		in = p.input.Sample()
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(in, rawDelta)
	}

	p.sim.Step(in, rawDelta)

	if p.sim.Over() {
		p.state = state.StateGameOver
		p.saveRecording()
	}
}

// saveGame persists a snapshot through the configured sink
func (p *Playing) saveGame() {
	if p.onSave == nil {
		return
	}
	snap := p.sim.Snapshot()
	if err := p.onSave(snap); err != nil {
		log.Error("save failed", "err", err)
		return
	}
	log.Info("game saved", "seed", snap.Seed, "gold", snap.Gold)
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}
	if err := p.recorder.Save(filename); err != nil {
		log.Error("failed to save recording", "err", err)
		return
	}
	log.Info("recording saved", "path", filename, "frames", p.recorder.FrameCount())
}

// restart rebuilds the simulation with a fresh seed (or rewinds the
// replay to its recorded seed)
func (p *Playing) restart() error {
	p.saveRecording()

	seed := time.Now().UnixNano()
	if p.replayer != nil {
		p.replayer.Rewind()
		seed = p.replayer.Seed()
	}

	s, err := sim.New(p.cfg, p.worldCfg, seed, p.bus)
	if err != nil {
		return err
	}
	p.sim = s
	p.seed = seed
	p.state = state.StatePlaying

	if p.recordFilename != "" {
		p.recorder = replay.NewRecorder(seed, p.worldCfg.Name)
		log.Info("recording restarted", "seed", seed)
	}
	return nil
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorFog)

	cam := p.sim.Camera()
	camX, camY := cam.X, cam.Y

	p.drawTiles(screen, camX, camY)
	p.drawEnemies(screen, camX, camY)
	p.drawSwings(screen, camX, camY)
	p.drawPlayer(screen, camX, camY)
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateGameOver:
		p.drawGameOverOverlay(screen)
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, camX, camY float64) {
	grid := p.sim.Grid()
	ts := grid.TileSize()

	startTileX := int(camX) / ts
	startTileY := int(camY) / ts
	endTileX := int(camX+float64(p.screenW))/ts + 1
	endTileY := int(camY+float64(p.screenH))/ts + 1

	for ty := startTileY; ty <= endTileY && ty < grid.Height(); ty++ {
		for tx := startTileX; tx <= endTileX && tx < grid.Width(); tx++ {
			if tx < 0 || ty < 0 {
				continue
			}
			// Unrevealed cells stay under the fog fill
			if !grid.IsRevealed(tx, ty) {
				continue
			}

			x := float64(tx*ts) - camX
			y := float64(ty*ts) - camY

			c := dayColors[grid.At(tx, ty)]
			if grid.Realm() == entity.RealmEclipse {
				c = eclipseTint(c)
			}
			ebitenutil.DrawRect(screen, x, y, float64(ts), float64(ts), c)
		}
	}
}

// eclipseTint darkens and blue-shifts a day color so the whole world
// reads as dusk without a second palette
func eclipseTint(c color.RGBA) color.RGBA {
	return color.RGBA{
		uint8(float64(c.R) * 0.45),
		uint8(float64(c.G) * 0.5),
		uint8(float64(c.B)*0.7 + 40),
		255,
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, camX, camY float64) {
	pl := p.sim.Player()

	// Flash when invincible
	c := colorPlayer
	if pl.IsInvincible() && int(pl.IframeTimer*10)%2 == 0 {
		c = colorFlash
	}
	ebitenutil.DrawRect(screen, pl.X-camX, pl.Y-camY, pl.W, pl.H, c)
}

func (p *Playing) drawEnemies(screen *ebiten.Image, camX, camY float64) {
	grid := p.sim.Grid()

	for _, e := range p.sim.Enemies() {
		cx, cy := e.Center()
		if !grid.IsRevealed(grid.TileIndex(cx), grid.TileIndex(cy)) {
			continue
		}

		c := colorEnemy
		if e.IsInvincible() && int(e.IframeTimer*10)%2 == 0 {
			c = colorFlash
		}
		ebitenutil.DrawRect(screen, e.X-camX, e.Y-camY, e.W, e.H, c)

		// Small health pip above damaged enemies
		if e.Health < e.MaxHealth {
			ratio := float64(e.Health) / float64(e.MaxHealth)
			ebitenutil.DrawRect(screen, e.X-camX, e.Y-camY-4, e.W, 2, colorHealthBG)
			ebitenutil.DrawRect(screen, e.X-camX, e.Y-camY-4, e.W*ratio, 2, colorHealthFG)
		}
	}
}

func (p *Playing) drawSwings(screen *ebiten.Image, camX, camY float64) {
	combat := p.sim.Combat()
	pl := p.sim.Player()

	if combat.PlayerSwingActive(pl) {
		x, y, w, h := combat.PlayerHitbox(pl)
		ebitenutil.DrawRect(screen, x-camX, y-camY, w, h, colorSwing)
	}
	for _, e := range p.sim.Enemies() {
		if e.Attacking && e.InConnectWindow() {
			x, y, w, h := combat.EnemyHitbox(e)
			ebitenutil.DrawRect(screen, x-camX, y-camY, w, h, colorSwing)
		}
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	pl := p.sim.Player()

	// Health bar
	barX := 10.0
	barY := float64(p.screenH - 20)
	barW := 100.0
	barH := 10.0

	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)
	ratio := float64(pl.Health) / float64(pl.MaxHealth)
	if ratio < 0 {
		ratio = 0
	}
	ebitenutil.DrawRect(screen, barX, barY, barW*ratio, barH, colorHealthFG)

	realm := "Dayrealm"
	if p.sim.Grid().Realm() == entity.RealmEclipse {
		realm = "Eclipse"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Gold: %d  |  %s", pl.Gold, realm), 10, p.screenH-35)

	ebitenutil.DebugPrint(screen, "WASD/Arrows: Move | Space/J: Attack | E: Shift Realm | F5: Save | ESC: Pause")
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawGameOverOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{100, 0, 0, 180}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := fmt.Sprintf("YOU DIED\n\nGold collected: %d\n\nPress Z to restart", p.sim.Player().Gold)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
	if p.state != state.StateGameOver {
		p.saveGame()
	}
}

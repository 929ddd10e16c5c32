// Package main provides an interactive viewer for particle system presets.
//
// Usage:
//
//	go run cmd/particles/main.go [flags]
//
// Flags:
//
//	--preset <name>   Start with a specific preset (built-in or stored)
//
// Controls:
//
//	Left/Right Arrow  - Switch to previous/next preset
//	Space             - Burst 50 extra particles
//	Mouse Click       - Move the emitter to the cursor
//	P                 - Toggle pause
//	R                 - Reset the current system
//	S                 - Save the current preset to persistent storage
//	Q/Escape          - Quit
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/ember/pkg/config"
	"github.com/gonewx/ember/pkg/particles"
	"github.com/gonewx/ember/pkg/render"
	"github.com/gonewx/ember/pkg/store"
)

const (
	screenWidth  = 1024
	screenHeight = 768

	frameTime = 1.0 / 60.0
)

var presetFlag = flag.String("preset", "", "Start with a specific preset name")

// builtinPresets are the demo configurations shipped with the viewer, in the
// same YAML schema the preset store persists.
var builtinPresets = map[string]string{
	"fire": `
name: fire
capacity: 1500
emitter:
  type: cone
  radius: 0.35
  angle: 0.45
gravity: {y: 1.5}
color1: {r: 1, g: 0.75, b: 0.3, a: 1}
color2: {r: 1, g: 0.45, b: 0.1, a: 1}
colorDead: {r: 0.2, g: 0.02, b: 0, a: 0}
minLifeTime: 0.6
maxLifeTime: 1.4
minSize: 0.25
maxSize: 0.6
minEmitPower: 1.5
maxEmitPower: 3
emitRate: 350
blendMode: additive
sizeGradients:
  - {gradient: 0, value: 0.5}
  - {gradient: 0.4, value: 1}
  - {gradient: 1, value: 0.1}
`,
	"smoke": `
name: smoke
capacity: 600
emitter:
  type: cone
  radius: 0.5
  angle: 0.8
gravity: {y: 0.6}
color1: {r: 0.45, g: 0.45, b: 0.5, a: 0.6}
color2: {r: 0.3, g: 0.3, b: 0.35, a: 0.5}
colorDead: {r: 0.1, g: 0.1, b: 0.12, a: 0}
minLifeTime: 2
maxLifeTime: 4
minSize: 0.6
maxSize: 1.2
minEmitPower: 0.4
maxEmitPower: 1
minAngularSpeed: -0.5
maxAngularSpeed: 0.5
emitRate: 60
blendMode: standard
sizeGradients:
  - {gradient: 0, value: 0.6}
  - {gradient: 1, value: 2.2}
`,
	"fountain": `
name: fountain
capacity: 2000
emitter:
  type: cone
  radius: 0.15
  angle: 0.25
gravity: {y: -9.8}
color1: {r: 0.4, g: 0.65, b: 1, a: 1}
color2: {r: 0.6, g: 0.8, b: 1, a: 1}
colorDead: {r: 0.2, g: 0.35, b: 0.8, a: 0}
minLifeTime: 1.2
maxLifeTime: 2
minSize: 0.12
maxSize: 0.25
minEmitPower: 6
maxEmitPower: 8
emitRate: 500
blendMode: standard
`,
	"sparks": `
name: sparks
capacity: 800
emitter:
  type: sphere
  radius: 0.2
  directionRandomizer: 1
gravity: {y: -4}
color1: {r: 1, g: 0.9, b: 0.5, a: 1}
color2: {r: 1, g: 0.7, b: 0.2, a: 1}
colorDead: {r: 0.6, g: 0.2, b: 0, a: 0}
minLifeTime: 0.4
maxLifeTime: 1.1
minSize: 0.08
maxSize: 0.18
minEmitPower: 3
maxEmitPower: 7
emitRate: 25
blendMode: additive
`,
}

// presetTints choose the sprite glow color per preset; unknown presets fall
// back to white.
var presetTints = map[string]color.RGBA{
	"fire":     {R: 255, G: 200, B: 140, A: 255},
	"smoke":    {R: 220, G: 220, B: 230, A: 255},
	"fountain": {R: 170, G: 210, B: 255, A: 255},
	"sparks":   {R: 255, G: 230, B: 170, A: 255},
}

// ViewerGame implements ebiten.Game over one active particle system at a
// time, rebuilt from its preset on every switch.
type ViewerGame struct {
	presets  *store.PresetStore
	renderer *render.Renderer
	view     render.View

	names        []string
	currentIndex int

	system  *particles.System
	texture *render.Texture

	paused        bool
	statusMessage string
}

// NewViewerGame loads built-in and stored presets and activates the first
// one (or the --preset selection).
func NewViewerGame(presets *store.PresetStore) (*ViewerGame, error) {
	// Seed the store with the built-ins it does not know yet so List shows
	// one unified catalog.
	for name, text := range builtinPresets {
		if presets.Exists(name) {
			continue
		}
		cfg, err := config.Parse([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("built-in preset %q: %w", name, err)
		}
		if err := presets.Save(name, cfg); err != nil {
			return nil, fmt.Errorf("built-in preset %q: %w", name, err)
		}
	}

	names := presets.List()
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no presets available")
	}

	startIndex := 0
	if *presetFlag != "" {
		for i, name := range names {
			if name == *presetFlag {
				startIndex = i
				break
			}
		}
	}

	g := &ViewerGame{
		presets:  presets,
		renderer: render.NewRenderer(),
		view: render.View{
			OriginX: screenWidth / 2,
			OriginY: screenHeight * 3 / 4,
			Scale:   60,
		},
		names:        names,
		currentIndex: startIndex,
	}
	if err := g.activatePreset(); err != nil {
		return nil, err
	}

	log.Printf("[Viewer] initialized with %d presets, starting with %q",
		len(names), names[startIndex])
	return g, nil
}

// activatePreset tears down the current system and builds the selected one.
func (g *ViewerGame) activatePreset() error {
	name := g.names[g.currentIndex]
	cfg, err := g.presets.Load(name)
	if err != nil {
		return fmt.Errorf("failed to load preset %q: %w", name, err)
	}

	system, err := particles.FromConfig(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return fmt.Errorf("failed to build system from preset %q: %w", name, err)
	}

	if g.system != nil {
		g.system.Dispose(true)
	}
	tint, ok := presetTints[name]
	if !ok {
		tint = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	g.texture = render.NewRadialTexture(64, tint)
	system.SetTexture(g.texture)

	if err := system.Start(); err != nil {
		return fmt.Errorf("failed to start preset %q: %w", name, err)
	}
	g.system = system
	g.statusMessage = fmt.Sprintf("Selected: %s", name)
	log.Printf("[Viewer] activated preset %q (%d/%d)", name, g.currentIndex+1, len(g.names))
	return nil
}

// Update advances the simulation one frame and handles input.
func (g *ViewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return fmt.Errorf("quit requested")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.currentIndex = (g.currentIndex + 1) % len(g.names)
		if err := g.activatePreset(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.currentIndex = (g.currentIndex - 1 + len(g.names)) % len(g.names)
		if err := g.activatePreset(); err != nil {
			return err
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if g.paused {
			g.statusMessage = "PAUSED - press P to resume"
		} else {
			g.statusMessage = "Resumed"
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.system.Reset()
		if err := g.system.Start(); err != nil {
			return err
		}
		g.statusMessage = "Reset"
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.system.Burst(50)
		g.statusMessage = "Burst: 50 particles"
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		name := g.names[g.currentIndex]
		if err := g.presets.Save(name, g.system.Serialize()); err != nil {
			g.statusMessage = fmt.Sprintf("Save failed: %v", err)
		} else {
			g.statusMessage = fmt.Sprintf("Saved preset: %s", name)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.system.EmitterPosition.X = (float64(x) - g.view.OriginX) / g.view.Scale
		g.system.EmitterPosition.Y = (g.view.OriginY - float64(y)) / g.view.Scale
	}

	if !g.paused {
		g.system.Animate(frameTime)
	}
	return nil
}

// Draw renders the active system and the overlay UI.
func (g *ViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 18, B: 28, A: 255})

	g.system.Render()
	g.renderer.Draw(screen, g.system.Snapshot(), g.texture, g.view)

	g.drawUI(screen)
}

func (g *ViewerGame) drawUI(screen *ebiten.Image) {
	name := g.names[g.currentIndex]
	title := fmt.Sprintf("Particle Viewer - Preset %d/%d: %s", g.currentIndex+1, len(g.names), name)
	ebitenutil.DebugPrintAt(screen, title, 10, 10)

	info := fmt.Sprintf("Alive: %d / %d", g.system.AliveCount(), g.system.GetCapacity())
	ebitenutil.DebugPrintAt(screen, info, 10, 30)

	if g.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 50)
	}

	controls := []string{
		"Navigation: <-/-> = Prev/Next preset",
		"Actions:    Space = Burst  Click = Move emitter  P = Pause  R = Reset  S = Save  Q = Quit",
	}
	y := screenHeight - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}

	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED (press P to resume)", screenWidth-220, 10)
	}
}

// Layout returns the game's logical screen size.
func (g *ViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	manager, err := gdata.Open(gdata.Config{AppName: "ember_particles"})
	if err != nil {
		log.Printf("[Viewer] Warning: persistent storage unavailable: %v", err)
		manager = nil
	}
	presets := store.NewPresetStore(manager)

	game, err := NewViewerGame(presets)
	if err != nil {
		log.Fatal("Failed to initialize viewer:", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Ember Particle Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		if err.Error() != "quit requested" {
			log.Fatal(err)
		}
	}
	os.Exit(0)
}

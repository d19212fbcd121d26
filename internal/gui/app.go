package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type App struct {
	Name       string
	Population physics.Population
	Boundary   physics.Constraint
	Resolver   *physics.Resolver
	Background rl.Color
	Paused     bool
	ShowStats  bool

	initial physics.Population
	window  config.WindowConfig
	time    float64
}

// NewApp builds the world described by cfg.
func NewApp(cfg *config.Config) (*App, error) {
	pop, boundary, resolver, err := cfg.World()
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	return &App{
		Name:       cfg.Name,
		Population: pop,
		Boundary:   boundary,
		Resolver:   resolver,
		Background: toColor(cfg.BackgroundColor()),
		initial:    pop.Clone(),
		window:     cfg.Window,
	}, nil
}

func initWindow(w config.WindowConfig) {
	if w.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
	}
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	rl.SetTargetFPS(int32(w.FPS))
	rl.SetExitKey(0)
}

// Run opens the window and drives the resolver with the measured frame
// time until Escape is released or the window is closed.
func (a *App) Run() {
	initWindow(a.window)
	defer rl.CloseWindow()

	log.Printf("window %dx%d, %d entities, preset %q", a.window.Width, a.window.Height, len(a.Population), a.Name)

	for !rl.WindowShouldClose() {
		if rl.IsKeyReleased(rl.KeyEscape) {
			break
		}
		a.handleInput()

		dt := float64(rl.GetFrameTime())
		if !a.Paused {
			a.Resolver.Update(a.Population, a.Boundary, dt)
			a.time += dt
		}

		rl.BeginDrawing()
		rl.ClearBackground(a.Background)
		a.draw()
		if a.ShowStats {
			a.drawStats()
		}
		rl.EndDrawing()
	}

	log.Printf("closed after %.2fs simulated", a.time)
}

func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		copy(a.Population, a.initial)
		a.time = 0
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.ShowStats = !a.ShowStats
	}
}

func toColor(c dynamo.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

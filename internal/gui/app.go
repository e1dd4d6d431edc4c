package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/swarm/internal/config"
	"github.com/san-kum/swarm/internal/swarm"
)

const Title = "Particle Attractor"

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColTarget  = rl.NewColor(255, 60, 60, 255)
)

// rlPresenter draws straight into the current raylib frame, so DrawPoints
// must run between BeginDrawing and EndDrawing.
type rlPresenter struct{}

func (rlPresenter) DrawPoints(req swarm.DrawRequest) {
	col := rl.NewColor(req.Color.R, req.Color.G, req.Color.B, 255)
	size := int32(req.Size)
	for _, p := range req.Points {
		if size == 1 {
			rl.DrawPixel(int32(p.X), int32(p.Y), col)
			continue
		}
		rl.DrawRectangle(int32(p.X), int32(p.Y), size, size, col)
	}
}

// App is the raylib window: the pointer drives the attractor and every
// frame is one tick.
type App struct {
	cfg     *config.Config
	driver  *swarm.Driver
	running bool
	showHUD bool
	lastX   float32
	lastY   float32
}

func NewApp(cfg *config.Config) (*App, error) {
	driver, err := cfg.NewDriver(rlPresenter{})
	if err != nil {
		return nil, err
	}
	center := driver.Attractor().Position()
	return &App{
		cfg:     cfg,
		driver:  driver,
		running: true,
		lastX:   float32(center.X),
		lastY:   float32(center.Y),
	}, nil
}

func initWindow(cfg *config.Config) {
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), Title)
	rl.SetTargetFPS(int32(cfg.TickRate))
	rl.SetExitKey(rl.KeyQ)
}

// RunRaylib opens the window and blocks until it is closed.
func RunRaylib(cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	initWindow(cfg)
	defer rl.CloseWindow()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update forwards pointer motion and handles keys. Stepping happens in
// Draw, where the presenter can paint.
func (a *App) Update() {
	pos := rl.GetMousePosition()
	if pos.X != a.lastX || pos.Y != a.lastY {
		a.lastX, a.lastY = pos.X, pos.Y
		if err := a.driver.PointerMoved(float64(pos.X), float64(pos.Y)); err != nil {
			log.Printf("pointer rejected: %v", err)
		}
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.driver.Reset(a.cfg.Rand())
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.running {
		a.driver.Tick(float64(rl.GetFrameTime()))
	} else {
		a.driver.Present()
	}

	if a.showHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	t := a.driver.Attractor().Position()
	rl.DrawCircleLines(int32(t.X), int32(t.Y), 4, ColTarget)

	status := "RUNNING"
	if !a.running {
		status = "PAUSED"
	}
	rl.DrawText(fmt.Sprintf("%s  tick %d  %d particles", status, a.driver.Ticks(), a.driver.Store().Len()), 10, 10, 10, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 10, 24, 10, ColText)
	rl.DrawText("[SPACE] PAUSE  [R] RESET  [H] HUD  [Q] QUIT", 10, int32(a.cfg.Height)-20, 10, ColTextDim)
}

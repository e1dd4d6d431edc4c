package gui

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/swarm/internal/config"
	"github.com/san-kum/swarm/internal/swarm"
)

// Game runs the swarm under ebiten. Frames are rasterized on the CPU and
// uploaded with a single WritePixels call.
type Game struct {
	cfg     *config.Config
	driver  *swarm.Driver
	raster  *Raster
	running bool
	showHUD bool
	lastX   int
	lastY   int
}

func NewGame(cfg *config.Config) (*Game, error) {
	raster := NewRaster(cfg.Width, cfg.Height)
	driver, err := cfg.NewDriver(raster)
	if err != nil {
		return nil, err
	}
	driver.Present()

	center := driver.Attractor().Position()
	return &Game{
		cfg:     cfg,
		driver:  driver,
		raster:  raster,
		running: true,
		lastX:   int(center.X),
		lastY:   int(center.Y),
	}, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.running = !g.running
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.driver.Reset(g.cfg.Rand())
		g.driver.Present()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	mx, my := ebiten.CursorPosition()
	if mx != g.lastX || my != g.lastY {
		g.lastX, g.lastY = mx, my
		if err := g.driver.PointerMoved(float64(mx), float64(my)); err != nil {
			log.Printf("pointer rejected: %v", err)
		}
	}

	if g.running {
		g.driver.Tick(1 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.raster.Pix)
	if g.showHUD {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("tick %d  %d particles  %.0f TPS\n[SPACE] pause  [R] reset  [H] hud  [Q] quit",
			g.driver.Ticks(), g.driver.Store().Len(), ebiten.ActualTPS()))
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// RunEbiten opens the window and blocks until it is closed.
func RunEbiten(cfg *config.Config) error {
	game, err := NewGame(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(Title)
	ebiten.SetTPS(int(cfg.TickRate))
	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	return nil
}

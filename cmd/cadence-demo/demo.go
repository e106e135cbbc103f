package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/cadence/app"
	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/plugin/audio"
	"github.com/lixenwraith/cadence/plugin/loader"
	"github.com/lixenwraith/cadence/plugin/screen"
	"github.com/lixenwraith/cadence/scheduler"
	"github.com/lixenwraith/cadence/stage"
	"github.com/lixenwraith/cadence/system"
)

const bannerFile = "banner.txt"

// Ball bounces inside the arena on fixed ticks
type Ball struct {
	X, Y    float64
	DX, DY  float64 // cells per second
	Bounces int
}

// Arena is the playfield size, tracking terminal resizes when a screen exists
type Arena struct {
	Width, Height int
}

// Banner is the text shown above the arena
type Banner struct {
	Text string
}

// DemoPlugin wires the bouncing ball demo
type DemoPlugin struct {
	Banner string
}

func (p DemoPlugin) Build(a *app.App) {
	app.InsertResource(a, Ball{X: 1, Y: 1, DX: 20, DY: 10})
	app.InsertResource(a, Arena{Width: 80, Height: 24})
	app.InsertResource(a, Banner{Text: "cadence"})

	a.AddSystem(stage.Update{}, system.Named("demo_resize", system.Func2(ResizeArena)))
	a.AddSystem(stage.Update{}, system.Named("demo_banner", system.Func3(ReceiveBanner)))
	a.AddSystem(stage.FixedUpdate{}, system.Named("demo_move", system.Func4(MoveBall)))
	a.AddSystem(stage.RenderUpdate{}, system.Named("demo_draw", system.Func4(Draw)))

	if p.Banner != "" {
		app.Send(a, loader.LoadRequest{Path: p.Banner})
	}
}

// ResizeArena follows terminal size; skipped when no screen plugin registered Resized
func ResizeArena(arena system.ReM[Arena], resized system.Msg[screen.Resized]) {
	for r := range resized.IterCurrent() {
		arena.Get().Width, arena.Get().Height = r.Width, r.Height
	}
}

// ReceiveBanner replaces the banner once the loader delivers it
func ReceiveBanner(b system.ReM[Banner], blobs system.Msg[loader.Blob], failed system.Msg[loader.LoadFailed]) {
	for blob := range blobs.IterCurrent() {
		if blob.Path == bannerFile {
			b.Get().Text = strings.TrimSpace(string(blob.Content))
		}
	}
	for f := range failed.IterCurrent() {
		core.Logger().Debug("banner not loaded", zap.String("path", f.Path), zap.Error(f.Err))
	}
}

// MoveBall advances one fixed step and reflects off the arena walls
func MoveBall(ball system.ReM[Ball], arena system.Re[Arena], fixed system.Re[scheduler.FixedData], tones system.MsgM[audio.PlayTone]) {
	b := ball.Get()
	w, h := float64(arena.Get().Width-1), float64(arena.Get().Height-1)
	dt := fixed.Get().Step.Seconds()

	b.X += b.DX * dt
	b.Y += b.DY * dt

	bounced := false
	if b.X < 0 || b.X > w {
		b.DX = -b.DX
		b.X = min(max(b.X, 0), w)
		bounced = true
	}
	if b.Y < 1 || b.Y > h {
		b.DY = -b.DY
		b.Y = min(max(b.Y, 1), h)
		bounced = true
	}
	if bounced {
		b.Bounces++
		tones.Send(audio.PlayTone{Freq: 440 + float64(b.Bounces%8)*55, Duration: 60 * time.Millisecond, Wave: audio.WaveSquare, Volume: 0.3})
	}
}

// Draw renders the banner and the ball
func Draw(scr system.LoReM[screen.Screen], ball system.Re[Ball], banner system.Re[Banner], fixed system.Re[scheduler.FixedData]) {
	s := scr.Get()
	b := ball.Get()

	header := fmt.Sprintf("%s  bounces:%d  %dHz  (esc to quit)", banner.Get().Text, b.Bounces, fixed.Get().TicksPerSecond())
	screen.DrawText(s.Screen, 0, 0, tcell.StyleDefault.Foreground(tcell.ColorYellow), header)
	s.SetContent(int(b.X), int(b.Y), '●', nil, tcell.StyleDefault.Foreground(tcell.ColorGreen))
}

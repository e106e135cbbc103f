// Package screen owns a tcell terminal screen and turns its events into messages.
package screen

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/cadence/app"
	"github.com/lixenwraith/cadence/channel"
	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/resource"
	"github.com/lixenwraith/cadence/stage"
	"github.com/lixenwraith/cadence/system"
)

const eventQueueSize = 256

// Screen is the terminal, confined to the app goroutine
type Screen struct {
	resource.Local
	tcell.Screen
}

// Events holds terminal events waiting for translation
type Events struct {
	Queue *channel.Queue[tcell.Event]
}

// KeyPressed is sent in First for every key event
type KeyPressed struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Resized is sent in First when the terminal size changes
type Resized struct {
	Width, Height int
}

// Factory creates an uninitialized screen
type Factory func() (tcell.Screen, error)

type created struct {
	screen tcell.Screen
	err    error
}

// Plugin creates the screen on a background goroutine
// The app waits in PhaseWaitingForPlugins until the screen is ready
type Plugin struct {
	// Factory defaults to tcell.NewScreen
	Factory Factory
	// QuitOnInterrupt requests exit on Ctrl-C and Escape
	QuitOnInterrupt bool

	pending *channel.Queue[created]
	done    bool
}

// New returns a plugin using factory; nil uses the real terminal
func New(factory Factory) *Plugin {
	return &Plugin{Factory: factory, QuitOnInterrupt: true}
}

func (p *Plugin) Build(a *app.App) {
	app.CreateMessageType[KeyPressed](a)
	app.CreateMessageType[Resized](a)
	app.InsertResource(a, Events{Queue: channel.NewQueue[tcell.Event](eventQueueSize)})

	a.AddSystem(stage.First{}, system.Named("screen_translate", system.Func3(Translate)))
	if p.QuitOnInterrupt {
		a.AddSystem(stage.PreUpdate{}, system.Named("screen_quit", system.Func2(QuitOnInterrupt)))
	}
	a.AddSystem(stage.RenderFirst{}, system.Named("screen_clear", system.Func1(Clear)))
	a.AddSystem(stage.RenderPostUpdate{}, system.Named("screen_present", system.Func1(Present)))
	a.OnShutdown(p.shutdown)

	factory := p.Factory
	if factory == nil {
		factory = tcell.NewScreen
	}
	p.pending = channel.NewQueue[created](1)
	core.Go(func() {
		s, err := factory()
		if err == nil {
			err = s.Init()
		}
		p.pending.Push(created{screen: s, err: err})
	})
}

// IsInitialized completes the hand-off once the goroutine has delivered the screen
func (p *Plugin) IsInitialized(a *app.App) bool {
	if p.done {
		return true
	}
	results := p.pending.Consume()
	if len(results) == 0 {
		return false
	}
	p.done = true

	r := results[0]
	if r.err != nil {
		a.Logger().Error("screen init failed", zap.Error(r.err))
		app.RequestExit(a.Resources(), 1)
		return true
	}

	s := r.screen
	app.InsertLocalResource(a, Screen{Screen: s})

	// Restore the terminal before a background panic exits the process
	core.SetCrashHandler(func(rec any) {
		s.Fini()
		core.SetCrashHandler(nil)
		core.HandleCrash(rec)
	})

	q := app.Resource[Events](a).Queue
	width, height := s.Size()
	q.Push(tcell.NewEventResize(width, height))
	core.Go(func() { poll(s, q) })

	a.Logger().Info("screen ready", zap.Int("width", width), zap.Int("height", height))
	return true
}

// poll forwards events until Fini makes PollEvent return nil
func poll(s tcell.Screen, q *channel.Queue[tcell.Event]) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		if !q.Push(ev) && q.Closed() {
			return
		}
	}
}

func (p *Plugin) shutdown(a *app.App) {
	app.Resource[Events](a).Queue.Close()
	if s, ok := app.GetLocalResource[Screen](a); ok {
		s.Fini()
		core.SetCrashHandler(nil)
	}
}

// Translate converts queued terminal events into messages
func Translate(events system.Re[Events], keys system.MsgM[KeyPressed], resized system.MsgM[Resized]) {
	for _, ev := range events.Get().Queue.Consume() {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			keys.Send(KeyPressed{Key: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()})
		case *tcell.EventResize:
			w, h := ev.Size()
			resized.Send(Resized{Width: w, Height: h})
		}
	}
}

// QuitOnInterrupt requests exit code 0 on Ctrl-C or Escape
func QuitOnInterrupt(keys system.Msg[KeyPressed], res system.ReAll) {
	for k := range keys.IterCurrent() {
		if k.Key == tcell.KeyCtrlC || k.Key == tcell.KeyEscape {
			app.RequestExit(res.Get(), 0)
			return
		}
	}
}

// Clear blanks the back buffer at the start of rendering
func Clear(s system.LoReM[Screen]) {
	s.Get().Clear()
}

// Present flushes the back buffer to the terminal
func Present(s system.LoReM[Screen]) {
	s.Get().Show()
}

// DrawText writes str at (x, y), clipped to the screen width
func DrawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	width, _ := s.Size()
	for _, r := range str {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

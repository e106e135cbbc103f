// Package loader reads files on background goroutines and delivers them as messages.
//
// Send a LoadRequest; one tick later a goroutine reads the path from the
// plugin's fs.FS. Results come back through a channel.Queue and are turned
// into Blob or LoadFailed messages in PreUpdate, visible via IterCurrent for
// the rest of that tick and via IterPrevious during the next one.
package loader

import (
	"io/fs"

	"go.uber.org/zap"

	"github.com/lixenwraith/cadence/app"
	"github.com/lixenwraith/cadence/channel"
	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/stage"
	"github.com/lixenwraith/cadence/status"
	"github.com/lixenwraith/cadence/system"
)

// DefaultQueueSize bounds results waiting for the app goroutine
const DefaultQueueSize = 64

// LoadRequest asks for Path to be read
type LoadRequest struct {
	Path string
}

// Blob is a successfully read file
type Blob struct {
	Path    string
	Content []byte
}

// LoadFailed reports a read error for Path
type LoadFailed struct {
	Path string
	Err  error
}

// Result is what a reader goroutine hands back
type Result struct {
	Blob Blob
	Err  error
}

// Source is the file system requests are read from
type Source struct {
	FS fs.FS
}

// Receiver holds the receiving end of the result queue
type Receiver struct {
	Queue *channel.Queue[Result]
}

// Plugin wires the loader into an app
type Plugin struct {
	FS        fs.FS
	QueueSize int
}

func (p Plugin) Build(a *app.App) {
	size := p.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}
	q := channel.NewQueue[Result](size)

	app.CreateMessageType[LoadRequest](a)
	app.CreateMessageType[Blob](a)
	app.CreateMessageType[LoadFailed](a)
	app.InsertResource(a, Source{FS: p.FS})
	app.InsertResource(a, Receiver{Queue: q})

	a.AddSystem(stage.PreUpdate{}, system.Named("loader_dispatch", system.Func3(Dispatch)))
	a.AddSystem(stage.PreUpdate{}, system.Named("loader_collect", system.Func4(Collect)))

	// Late results land in a closed queue and are dropped
	a.OnShutdown(func(*app.App) { q.Close() })
}

// Dispatch starts one reader goroutine per request sent last tick
func Dispatch(src system.Re[Source], recv system.Re[Receiver], reqs system.Msg[LoadRequest]) {
	fsys := src.Get().FS
	q := recv.Get().Queue

	for req := range reqs.IterPrevious() {
		path := req.Path
		core.Go(func() {
			data, err := fs.ReadFile(fsys, path)
			r := Result{Blob: Blob{Path: path, Content: data}, Err: err}
			if !q.Push(r) {
				core.Logger().Warn("loader result dropped", zap.String("path", path), zap.Bool("closed", q.Closed()))
			}
		})
	}
}

// Collect turns finished reads into messages
func Collect(recv system.Re[Receiver], loaded system.MsgM[Blob], failed system.MsgM[LoadFailed], reg system.Re[status.Registry]) {
	for _, r := range recv.Get().Queue.Consume() {
		if r.Err != nil {
			failed.Send(LoadFailed{Path: r.Blob.Path, Err: r.Err})
			reg.Get().Add(status.LoaderFailed, 1)
			continue
		}
		loaded.Send(r.Blob)
		reg.Get().Add(status.LoaderCompleted, 1)
	}
}

// Package audio plays synthesized tones requested through messages.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/cadence/app"
	"github.com/lixenwraith/cadence/resource"
	"github.com/lixenwraith/cadence/stage"
	"github.com/lixenwraith/cadence/status"
	"github.com/lixenwraith/cadence/system"
)

const (
	DefaultSampleRate   = beep.SampleRate(48000)
	DefaultToneDuration = 80 * time.Millisecond
	speakerBuffer       = 100 * time.Millisecond
)

// PlayTone requests a short synthesized tone
type PlayTone struct {
	Freq     float64
	Duration time.Duration // 0 uses DefaultToneDuration
	Wave     Wave
	Volume   float64 // linear, 0 means full
}

// Device owns the mixer the speaker pulls from
type Device struct {
	resource.Local

	Mixer   *beep.Mixer
	Rate    beep.SampleRate
	Muted   bool
	speaker bool
}

// Add queues a streamer, locking the speaker when it is running
func (d *Device) Add(s beep.Streamer) {
	if d.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	d.Mixer.Add(s)
}

// Clear drops every queued streamer
func (d *Device) Clear() {
	if d.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	d.Mixer.Clear()
}

// SpeakerInit opens the output device; swapped out in tests
type SpeakerInit func(rate beep.SampleRate, bufferSize int) error

var speakerOnce sync.Once

// Plugin inserts a Device and plays PlayTone messages sent the previous tick
type Plugin struct {
	Rate beep.SampleRate
	Mute bool
	// Speaker opens the device; nil keeps audio in-process (mixer only)
	Speaker SpeakerInit
}

func (p Plugin) Build(a *app.App) {
	rate := p.Rate
	if rate == 0 {
		rate = DefaultSampleRate
	}
	dev := Device{Mixer: &beep.Mixer{}, Rate: rate, Muted: p.Mute}

	if p.Speaker != nil && !p.Mute {
		if err := p.Speaker(rate, rate.N(speakerBuffer)); err != nil {
			a.Logger().Warn("audio unavailable, continuing muted", zap.Error(err))
			dev.Muted = true
		} else {
			speaker.Play(dev.Mixer)
			dev.speaker = true
			a.OnShutdown(func(*app.App) {
				speaker.Clear()
				speakerOnce.Do(speaker.Close)
			})
		}
	}

	app.InsertLocalResource(a, dev)
	app.CreateMessageType[PlayTone](a)
	a.AddSystem(stage.PreUpdate{}, system.Named("audio_play", system.Func3(Play)))
}

// Play mixes every tone sent last tick
func Play(dev system.LoReM[Device], tones system.Msg[PlayTone], reg system.Re[status.Registry]) {
	d := dev.Get()
	if d.Muted {
		return
	}
	for t := range tones.IterPrevious() {
		d.Add(Voice(t, d.Rate))
		reg.Get().Add(status.AudioPlayed, 1)
	}
}

package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/cadence/app"
	"github.com/lixenwraith/cadence/clock"
	"github.com/lixenwraith/cadence/plugin/defaults"
	"github.com/lixenwraith/cadence/status"
)

const testRate = beep.SampleRate(8000)

func newAudioApp(p Plugin, opts ...app.Option) *app.App {
	a := app.New(opts...)
	a.AddPlugins(
		defaults.Plugins{Clock: defaults.ClockPlugin{Source: clock.NewManualTimeProvider(time.Now())}},
		p,
	)
	return a
}

func drain(s beep.Streamer) (samples int, peak float64) {
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		samples += n
		if !ok {
			return samples, peak
		}
	}
}

func TestToneReachesMixerNextTick(t *testing.T) {
	a := newAudioApp(Plugin{Rate: testRate})
	dev := app.LocalResource[Device](a)

	app.Send(a, PlayTone{Freq: 440})
	a.Update()
	if dev.Mixer.Len() != 1 {
		t.Fatalf("mixer streamers = %d after first tick, want 1", dev.Mixer.Len())
	}
	a.Update()
	if dev.Mixer.Len() != 1 {
		t.Errorf("tone played twice: mixer streamers = %d", dev.Mixer.Len())
	}
	if got := a.Status().Count(status.AudioPlayed); got != 1 {
		t.Errorf("played = %d, want 1", got)
	}

	_, peak := drain(beep.Take(testRate.N(DefaultToneDuration), dev.Mixer))
	if peak == 0 {
		t.Error("mixer output is silent")
	}
}

func TestMutedDeviceIgnoresTones(t *testing.T) {
	a := newAudioApp(Plugin{Rate: testRate, Mute: true})
	app.Send(a, PlayTone{Freq: 440})
	a.Update()

	if n := app.LocalResource[Device](a).Mixer.Len(); n != 0 {
		t.Errorf("mixer streamers = %d, want 0", n)
	}
}

func TestSpeakerFailureMutes(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	failing := func(beep.SampleRate, int) error { return errors.New("no device") }

	a := newAudioApp(Plugin{Rate: testRate, Speaker: failing}, app.WithLogger(zap.New(obs)))

	if !app.LocalResource[Device](a).Muted {
		t.Error("Device not muted after speaker failure")
	}
	if logs.FilterMessage("audio unavailable, continuing muted").Len() != 1 {
		t.Errorf("warn logs = %v", logs.All())
	}
}

func TestVoiceLengthAndEnvelope(t *testing.T) {
	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Voice(PlayTone{Freq: 440, Duration: 50 * time.Millisecond, Wave: tt.wave}, testRate)

			first := make([][2]float64, 1)
			v.Stream(first)
			if first[0][0] != 0 {
				t.Errorf("first sample = %v, want 0 from attack ramp", first[0][0])
			}

			samples, peak := drain(v)
			if want := testRate.N(50*time.Millisecond) - 1; samples != want {
				t.Errorf("samples = %d, want %d", samples, want)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak = %v, want (0, 1]", peak)
			}
		})
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	v := withVolume(newOscillator(440, 10*time.Millisecond, WaveSquare, testRate), 0)
	if _, peak := drain(v); peak != 0 {
		t.Errorf("peak = %v, want 0", peak)
	}
}

// Package audio plays a short tone after each edit. The pitch rises with
// the number of bounces in the edited ball's new path.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate  = beep.SampleRate(44100)
	cueDuration = 80 * time.Millisecond
	basePitch   = 440.0
	maxSteps    = 12
)

// Pitch returns the cue frequency for a path with the given number of
// bounces: two semitones per bounce above A4, capped at two octaves.
func Pitch(bounces int) float64 {
	if bounces < 0 {
		bounces = 0
	}
	if bounces > maxSteps {
		bounces = maxSteps
	}
	return basePitch * math.Pow(2, float64(2*bounces)/12)
}

// Tone builds the cue streamer for a path with the given number of bounces.
func Tone(bounces int, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, Pitch(bounces))
	if err != nil {
		return nil, err
	}
	tone := beep.Take(sampleRate.N(cueDuration), sine)
	if volume <= 0 {
		return &effects.Volume{Streamer: tone, Base: 2, Volume: 0, Silent: true}, nil
	}
	return &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(volume)}, nil
}

// Cue owns the speaker. A Cue that failed to initialize stays silent.
type Cue struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

func NewCue(volume float64) *Cue {
	return &Cue{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the speaker.
func (c *Cue) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play queues one cue.
func (c *Cue) Play(bounces int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	tone, err := Tone(bounces, c.volume)
	if err != nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
}

// Close silences any queued cues.
func (c *Cue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

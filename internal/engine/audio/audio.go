// Package audio plays a short tone whenever the tracked input method
// changes.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/Faultbox/whatinput/internal/logger"
	"github.com/Faultbox/whatinput/internal/whatinput"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// DefaultCueLength is how long a cue sounds.
const DefaultCueLength = 80 * time.Millisecond

// cue pitches in Hz
var tones = map[whatinput.Method]float64{
	whatinput.MethodKeyboard: 523.25, // C5
	whatinput.MethodMouse:    659.25, // E5
	whatinput.MethodTouch:    783.99, // G5
}

// Cues plays one tone per input method. It implements whatinput.Listener.
type Cues struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64
	length      time.Duration

	mixer *beep.Mixer
}

// New creates a cue player at the given volume (0.0 to 1.0).
func New(volume float64) *Cues {
	return &Cues{
		sampleRate: DefaultSampleRate,
		volume:     clamp(volume, 0, 1),
		length:     DefaultCueLength,
		mixer:      &beep.Mixer{},
	}
}

// Init opens the speaker.
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	err := speaker.Init(c.sampleRate, c.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(c.mixer)

	c.initialized = true
	return nil
}

// Close stops playback.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		speaker.Clear()
	}
	c.initialized = false
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (c *Cues) SetVolume(vol float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (c *Cues) Volume() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.volume
}

// Tone returns the streamer for m's cue.
func (c *Cues) Tone(m whatinput.Method) (beep.Streamer, error) {
	freq, ok := tones[m]
	if !ok {
		return nil, fmt.Errorf("no cue for method %q", m)
	}

	c.mu.RLock()
	sr, vol, length := c.sampleRate, c.volume, c.length
	c.mu.RUnlock()

	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone: %w", err)
	}

	return &effects.Volume{
		Streamer: beep.Take(sr.N(length), sine),
		Base:     10,
		Volume:   volumeToDb(vol) / 20,
		Silent:   vol <= 0,
	}, nil
}

// Play queues m's cue. It does nothing before Init.
func (c *Cues) Play(m whatinput.Method) error {
	c.mu.RLock()
	initialized := c.initialized
	c.mu.RUnlock()
	if !initialized {
		return nil
	}

	tone, err := c.Tone(m)
	if err != nil {
		return err
	}

	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
	return nil
}

// MethodChanged plays the cue of the new method.
func (c *Cues) MethodChanged(m whatinput.Method) {
	if err := c.Play(m); err != nil {
		logger.Warn("cue playback failed", zap.String("method", m.String()), zap.Error(err))
	}
}

// volumeToDb converts a 0-1 volume to decibels: 1 is 0dB, 0.5 about -6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

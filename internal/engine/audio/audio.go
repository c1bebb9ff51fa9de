// Package audio plays short synthesized chimes as the fractal grows.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ChimeDuration is the length of one growth chime.
const ChimeDuration = 180 * time.Millisecond

// DefaultVolume is restored on unmute when the volume was set to zero.
const DefaultVolume = 0.5

// baseFrequency is middle C; deeper nodes climb a major pentatonic scale.
const baseFrequency = 261.63

var pentatonic = [...]int{0, 2, 4, 7, 9}

// Manager mixes chimes into the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64 // 0.0 to 1.0
	muted       bool
	mixer       *beep.Mixer
	played      int
}

// New creates a new audio manager.
func New(volume float64) *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     clamp(volume, 0, 1),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close silences the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the chime volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the chime volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// Muted reports whether chimes are silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// ToggleMute flips the mute state and returns it. Unmuting a manager whose
// volume is zero restores DefaultVolume so the toggle is always audible.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.muted = !m.muted
	if !m.muted && m.volume <= 0 {
		m.volume = DefaultVolume
	}
	return m.muted
}

// Played returns how many chimes were queued.
func (m *Manager) Played() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.played
}

// Chime queues the tone for a node at depth. Chimes overlap freely.
func (m *Manager) Chime(depth int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}
	if m.muted || m.volume <= 0 {
		return nil
	}

	s := &effects.Volume{
		Streamer: Tone(m.sampleRate, DepthFrequency(depth), ChimeDuration),
		Base:     2,
		Volume:   volumeToDb(m.volume),
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	m.played++
	return nil
}

// DepthFrequency maps a depth onto a pentatonic scale starting at middle C,
// rising one octave every five levels.
func DepthFrequency(depth int) float64 {
	if depth < 0 {
		depth = 0
	}
	octave, step := depth/len(pentatonic), depth%len(pentatonic)
	semitones := 12*octave + pentatonic[step]
	return baseFrequency * math.Pow(2, float64(semitones)/12)
}

// Tone returns a sine wave of the given frequency that fades out linearly
// over dur and then ends.
func Tone(sr beep.SampleRate, freq float64, dur time.Duration) beep.Streamer {
	total := sr.N(dur)
	pos := 0
	step := 2 * math.Pi * freq / float64(sr)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for ; n < len(samples) && pos < total; n++ {
			envelope := 1 - float64(pos)/float64(total)
			v := math.Sin(step*float64(pos)) * envelope * 0.5
			samples[n][0] = v
			samples[n][1] = v
			pos++
		}
		return n, true
	})
}

// volumeToDb converts a 0-1 volume into the base-2 exponent effects.Volume
// expects: 1 is unchanged, 0.5 is -1.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

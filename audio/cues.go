package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cues plays short synthesized tones for roll events. Audio is optional:
// if Init fails (no output device, headless host) every cue is a no-op and
// the simulation runs silent.
type Cues struct {
	ready bool
}

func NewCues() *Cues {
	return &Cues{}
}

// Init opens the speaker. Callers should log the error and continue.
func (c *Cues) Init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	c.ready = true
	return nil
}

// Roll marks the throw: a low thump.
func (c *Cues) Roll() {
	c.tone(180, 90*time.Millisecond)
}

// Impact marks a hard contact with felt, rail, or the other die.
func (c *Cues) Impact() {
	c.tone(880, 35*time.Millisecond)
}

// Settle marks the end of a roll.
func (c *Cues) Settle() {
	c.tone(520, 140*time.Millisecond)
}

func (c *Cues) tone(freq float64, d time.Duration) {
	if !c.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (c *Cues) Close() {
	if c.ready {
		speaker.Close()
		c.ready = false
	}
}

// Package exercise implements the timed session state machines behind each
// drill: sight reading, chord guessing, interval recognition, and rhythm
// training. Sessions own their timers and are the sole writers of their
// observable state; external code reads through accessor methods and feeds
// input through the handler methods.
package exercise

import (
	"errors"
	"math/rand"
	"time"

	"github.com/verte-zerg/triad/internal/audio"
)

// Difficulty selects a preset tier.
type Difficulty string

// Preset tiers. Unrecognized difficulty strings fall back to Easy.
const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty maps a difficulty string onto a tier, substituting Easy
// for anything unrecognized.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s)
	default:
		return Easy
	}
}

// ErrNoRenderer reports a game-loop entry point called before a renderer
// was attached. There is no sensible recovery; the caller wired things up
// in the wrong order.
var ErrNoRenderer = errors.New("no staff renderer attached")

// Deps carries the injected collaborators shared by every session type.
// Zero-value fields get working defaults: silent audio and a time-seeded
// random source.
type Deps struct {
	Tone audio.TonePlayer
	SFX  audio.SFXPlayer
	Rand *rand.Rand
}

func (d Deps) withDefaults() Deps {
	if d.Tone == nil {
		d.Tone = audio.NopPlayer{}
	}
	if d.SFX == nil {
		d.SFX = audio.NopPlayer{}
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return d
}

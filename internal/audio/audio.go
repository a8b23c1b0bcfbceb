// Package audio defines the playback collaborators exercises depend on,
// plus the sample-selection math the tone player uses.
package audio

import (
	"io"

	"github.com/verte-zerg/triad/internal/theory"
)

// Cue names a sound effect.
type Cue string

// The sound-effect cue set.
const (
	CueTickDown Cue = "clickDown"
	CueTickUp   Cue = "clickUp"
	CueWrong    Cue = "wrong"
	CueCorrect  Cue = "correct"
)

// TonePlayer produces pitched audio. Calls are fire-and-forget.
type TonePlayer interface {
	PlayNote(note theory.Note)
	PlayChord(notes []theory.Note)
}

// SFXPlayer produces short feedback cues.
type SFXPlayer interface {
	Play(cue Cue)
}

// NopPlayer discards all playback. It stands in when audio is disabled and
// in tests.
type NopPlayer struct{}

// PlayNote implements TonePlayer.
func (NopPlayer) PlayNote(theory.Note) {}

// PlayChord implements TonePlayer.
func (NopPlayer) PlayChord([]theory.Note) {}

// Play implements SFXPlayer.
func (NopPlayer) Play(Cue) {}

// BellSFX maps answer cues onto the terminal bell. Tick cues stay silent;
// a zero volume silences everything.
type BellSFX struct {
	w      io.Writer
	volume int
}

// NewBellSFX builds a bell-backed SFX player writing to w.
func NewBellSFX(w io.Writer, volume int) *BellSFX {
	return &BellSFX{w: w, volume: volume}
}

// Play implements SFXPlayer.
func (b *BellSFX) Play(cue Cue) {
	if b.volume <= 0 {
		return
	}
	switch cue {
	case CueWrong, CueCorrect:
		if _, err := b.w.Write([]byte("\a")); err != nil {
			// Best-effort bell.
			_ = err
		}
	}
}

// SetVolume updates the volume, 0 to 100.
func (b *BellSFX) SetVolume(volume int) {
	b.volume = volume
}

package audio

import (
	"fmt"
	"math"

	"github.com/verte-zerg/triad/internal/theory"
)

// The sample bank holds one recording per anchor pitch: a C and a G in each
// octave from C1 up to a final C8. Anything else plays as the nearest
// anchor pitch-shifted by a playback-rate change.
var anchorSemitones = func() []int {
	var anchors []int
	for octave := 1; octave < 8; octave++ {
		anchors = append(anchors, octave*12, octave*12+7)
	}
	return append(anchors, 8*12)
}()

// Sample names an anchor recording and the semitone shift to apply to it.
type Sample struct {
	Name  string
	Shift int
}

// SampleFor picks the anchor sample nearest to the note. Octave-less notes
// have no playable pitch and report false.
func SampleFor(note theory.Note) (Sample, bool) {
	if !note.HasOctave {
		return Sample{}, false
	}
	semitone, err := theory.NoteToSemitone(note)
	if err != nil {
		return Sample{}, false
	}
	anchor := theory.ClosestAnchor(semitone, anchorSemitones)
	letter := "C"
	if anchor%12 == 7 {
		letter = "G"
	}
	return Sample{
		Name:  fmt.Sprintf("%s%d", letter, anchor/12),
		Shift: semitone - anchor,
	}, true
}

// Rate converts a semitone shift into a playback-rate multiplier.
func Rate(shift int) float64 {
	return math.Pow(2, float64(shift)/12)
}

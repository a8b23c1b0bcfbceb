package theory

import (
	"fmt"
	"regexp"
	"strings"
)

// scaleIntervals maps a scale name to its degree offsets. The final offset
// of 12 yields the octave repeat of the root.
var scaleIntervals = map[string][]int{
	"Major":      {0, 2, 4, 5, 7, 9, 11, 12},
	"Minor":      {0, 2, 3, 5, 7, 8, 10, 12},
	"Lydian":     {0, 2, 4, 6, 7, 9, 11, 12},
	"Mixolydian": {0, 2, 4, 5, 7, 9, 10, 12},
	"Dorian":     {0, 2, 3, 5, 7, 9, 10, 12},
	"Phrygian":   {0, 1, 3, 5, 7, 8, 10, 12},
	"Locrian":    {0, 1, 3, 5, 6, 8, 10, 12},
}

var scaleRootRe = regexp.MustCompile(`^([a-gA-G])([b#]?)$`)

// ScaleNotes spells out the notes of a scale rooted at a letter like "Eb",
// starting at rootOctave and ending on the octave repeat of the root.
func ScaleNotes(root, scaleName string, rootOctave int) ([]Note, error) {
	intervals, ok := scaleIntervals[scaleName]
	if !ok {
		return nil, fmt.Errorf("unknown scale type: %q", scaleName)
	}

	m := scaleRootRe.FindStringSubmatch(root)
	if m == nil {
		return nil, fmt.Errorf("%w: scale root %q", ErrInvalidNote, root)
	}
	rootNote := NewNote(strings.ToUpper(m[1]), Accidental(m[2]), rootOctave)

	preferFlats := SpellingPreference(root, scaleName)
	rootSemitone, err := NoteToSemitone(rootNote)
	if err != nil {
		return nil, err
	}

	notes := make([]Note, 0, len(intervals))
	for _, interval := range intervals {
		notes = append(notes, SemitoneToNote(rootSemitone+interval, preferFlats))
	}
	return notes, nil
}

// Package theory implements pitch, chord, and interval arithmetic.
package theory

import (
	"errors"
	"fmt"
)

// Accidental alters a natural letter by one semitone.
type Accidental string

// Recognized accidentals. Double accidentals are never produced or accepted.
const (
	Natural Accidental = ""
	Sharp   Accidental = "#"
	Flat    Accidental = "b"
)

// ErrInvalidNote reports a note whose name is not a natural letter.
var ErrInvalidNote = errors.New("invalid note")

// Note is a spelled pitch: a natural letter name, an optional accidental,
// and an optional octave. HasOctave false means "pitch class only", as
// produced by octave-less button input.
type Note struct {
	Name       string
	Accidental Accidental
	Octave     int
	HasOctave  bool
}

// NaturalNoteNames lists the seven letter names in staff order.
var NaturalNoteNames = []string{"C", "D", "E", "F", "G", "A", "B"}

// naturalOffsets maps a letter name to its semitone offset within an octave.
var naturalOffsets = map[string]int{
	"C": 0,
	"D": 2,
	"E": 4,
	"F": 5,
	"G": 7,
	"A": 9,
	"B": 11,
}

// offsetLetters is the inverse of naturalOffsets.
var offsetLetters = map[int]string{
	0: "C", 2: "D", 4: "E", 5: "F", 7: "G", 9: "A", 11: "B",
}

// NewNote builds a note with an octave.
func NewNote(name string, accidental Accidental, octave int) Note {
	return Note{Name: name, Accidental: accidental, Octave: octave, HasOctave: true}
}

// PitchClass builds an octave-less note.
func PitchClass(name string, accidental Accidental) Note {
	return Note{Name: name, Accidental: accidental}
}

// String renders the note as e.g. "C#4" or "Bb" when octave-less.
func (n Note) String() string {
	if n.HasOctave {
		return fmt.Sprintf("%s%s%d", n.Name, n.Accidental, n.Octave)
	}
	return n.Name + string(n.Accidental)
}

// NoteToSemitone converts a note to its absolute semitone position.
// A missing octave counts as octave 0.
func NoteToSemitone(n Note) (int, error) {
	offset, ok := naturalOffsets[n.Name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, n.Name)
	}
	semitone := offset
	if n.HasOctave {
		semitone += n.Octave * 12
	}
	switch n.Accidental {
	case Sharp:
		semitone++
	case Flat:
		semitone--
	}
	return semitone, nil
}

// SemitoneToNote converts an absolute semitone back to a spelled note.
// Naturals come back with no accidental. Non-natural pitch classes are
// spelled as the flat of the natural above when preferFlats is set, and
// as the sharp of the natural below otherwise. Every non-natural class
// sits between two naturals, so the spelling never wraps an octave and
// "Cb" is never produced.
func SemitoneToNote(semitone int, preferFlats bool) Note {
	octave := floorDiv(semitone, 12)
	class := semitone - octave*12

	if letter, ok := offsetLetters[class]; ok {
		return NewNote(letter, Natural, octave)
	}
	if preferFlats {
		return NewNote(offsetLetters[class+1], Flat, octave)
	}
	return NewNote(offsetLetters[class-1], Sharp, octave)
}

// MIDIToNote converts a MIDI key number to a note. MIDI anchors C4 at 60
// while the staff layer anchors it at 48, hence the octave shift.
func MIDIToNote(key int) Note {
	return SemitoneToNote(key-12, false)
}

// ClampToNatural lowers a semitone onto the nearest natural at or below it.
func ClampToNatural(semitone int) int {
	octave := floorDiv(semitone, 12)
	class := semitone - octave*12
	if _, ok := offsetLetters[class]; ok {
		return semitone
	}
	return semitone - 1
}

// Matches reports whether an input note answers a target note. When either
// side lacks an octave the comparison degrades to letter plus accidental.
func Matches(input, target Note) bool {
	if !input.HasOctave || !target.HasOctave {
		input.HasOctave = false
		target.HasOctave = false
	}
	a, err := NoteToSemitone(input)
	if err != nil {
		return false
	}
	b, err := NoteToSemitone(target)
	if err != nil {
		return false
	}
	return a == b
}

// ClosestAnchor returns the anchor semitone nearest to target. Ties keep
// the earlier anchor, so the scan result is stable for any anchor order.
func ClosestAnchor(target int, anchors []int) int {
	if len(anchors) == 0 {
		return 0
	}
	best := anchors[0]
	for _, a := range anchors[1:] {
		if abs(a-target) < abs(best-target) {
			best = a
		}
	}
	return best
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

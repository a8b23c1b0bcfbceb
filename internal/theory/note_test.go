package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSemitoneRoundTrip(t *testing.T) {
	for _, preferFlats := range []bool{false, true} {
		for semitone := -24; semitone <= 120; semitone++ {
			note := SemitoneToNote(semitone, preferFlats)
			back, err := NoteToSemitone(note)
			if err != nil {
				t.Fatalf("semitone %d (flats=%v): %v", semitone, preferFlats, err)
			}
			if back != semitone {
				t.Fatalf("semitone %d (flats=%v): spelled %s, round-tripped to %d", semitone, preferFlats, note, back)
			}
		}
	}
}

func TestNaturalsHaveNoAccidental(t *testing.T) {
	for octave := 0; octave <= 8; octave++ {
		for _, name := range NaturalNoteNames {
			semitone, err := NoteToSemitone(NewNote(name, Natural, octave))
			if err != nil {
				t.Fatalf("%s%d: %v", name, octave, err)
			}
			for _, preferFlats := range []bool{false, true} {
				got := SemitoneToNote(semitone, preferFlats)
				if got.Accidental != Natural || got.Name != name || got.Octave != octave {
					t.Fatalf("%s%d (flats=%v): got %s", name, octave, preferFlats, got)
				}
			}
		}
	}
}

func TestEnharmonicSpelling(t *testing.T) {
	assert := assert.New(t)

	// Semitone 49 is one above C4=48.
	assert.Equal(NewNote("C", Sharp, 4), SemitoneToNote(49, false))
	assert.Equal(NewNote("D", Flat, 4), SemitoneToNote(49, true))

	// Class 10 spells as A# or Bb, never as anything wrapping to C.
	assert.Equal(NewNote("A", Sharp, 3), SemitoneToNote(46, false))
	assert.Equal(NewNote("B", Flat, 3), SemitoneToNote(46, true))

	// Negative semitones keep a consistent octave.
	assert.Equal(NewNote("B", Natural, -1), SemitoneToNote(-1, false))
	assert.Equal(NewNote("B", Flat, -1), SemitoneToNote(-2, true))
}

func TestNoteToSemitoneInvalidName(t *testing.T) {
	_, err := NoteToSemitone(Note{Name: "H", HasOctave: true, Octave: 4})
	assert.ErrorIs(t, err, ErrInvalidNote)
}

func TestMIDIToNote(t *testing.T) {
	// MIDI 60 is middle C, which the staff layer spells as C4 = semitone 48.
	note := MIDIToNote(60)
	assert.Equal(t, NewNote("C", Natural, 4), note)

	semitone, err := NoteToSemitone(note)
	assert.NoError(t, err)
	assert.Equal(t, 48, semitone)
}

func TestMatches(t *testing.T) {
	cases := []struct {
		name   string
		input  Note
		target Note
		want   bool
	}{
		{"same note", NewNote("C", Sharp, 4), NewNote("C", Sharp, 4), true},
		{"enharmonic equal", NewNote("C", Sharp, 4), NewNote("D", Flat, 4), true},
		{"wrong octave", NewNote("C", Natural, 3), NewNote("C", Natural, 4), false},
		{"octave-less input matches any octave", PitchClass("G", Natural), NewNote("G", Natural, 5), true},
		{"octave-less spelling still honored", PitchClass("B", Sharp), NewNote("C", Natural, 4), false},
		{"octave-less mismatch", PitchClass("A", Natural), NewNote("G", Natural, 4), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(tc.input, tc.target); got != tc.want {
				t.Fatalf("Matches(%s, %s) = %v, want %v", tc.input, tc.target, got, tc.want)
			}
		})
	}
}

func TestClampToNatural(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(48, ClampToNatural(48)) // C4 stays
	assert.Equal(48, ClampToNatural(49)) // C#4 drops to C4
	assert.Equal(50, ClampToNatural(50)) // D4 stays
	assert.Equal(57, ClampToNatural(58)) // A#4 drops to A4
}

func TestClosestAnchor(t *testing.T) {
	anchors := []int{0, 7, 12, 19, 24}
	assert := assert.New(t)
	assert.Equal(0, ClosestAnchor(2, anchors))
	assert.Equal(7, ClosestAnchor(6, anchors))
	assert.Equal(24, ClosestAnchor(40, anchors))
	// Equidistant targets keep the earlier anchor.
	assert.Equal(0, ClosestAnchor(3, []int{0, 6}))
}

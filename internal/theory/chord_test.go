package theory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChordToNotesCmaj(t *testing.T) {
	notes, err := ChordToNotes("Cmaj", 4)
	if err != nil {
		t.Fatalf("ChordToNotes: %v", err)
	}

	var semitones []int
	for _, n := range notes {
		s, err := NoteToSemitone(n)
		if err != nil {
			t.Fatalf("NoteToSemitone(%s): %v", n, err)
		}
		semitones = append(semitones, s)
	}
	assert.Equal(t, []int{48, 52, 55}, semitones)

	symbol, ok := NotesToChordSymbol(notes)
	assert.True(t, ok)
	assert.Equal(t, "Cmaj", symbol)
}

func TestChordRoundTrips(t *testing.T) {
	symbols := []string{"Amin7", "Fmaj", "Bbmaj", "Edim", "Gsus4", "Dmin9", "C#min", "Abmaj7"}
	for _, symbol := range symbols {
		t.Run(symbol, func(t *testing.T) {
			notes, err := ChordToNotes(symbol, 4)
			if err != nil {
				t.Fatalf("ChordToNotes(%q): %v", symbol, err)
			}
			got, ok := NotesToChordSymbol(notes)
			if !ok {
				t.Fatalf("NotesToChordSymbol(%v): no quality matched", notes)
			}
			if got != symbol {
				t.Fatalf("round trip of %q produced %q", symbol, got)
			}
		})
	}
}

func TestChordSpellingFollowsKey(t *testing.T) {
	// Eb major sits on the flat side of the circle: Eb G Bb.
	notes, err := ChordToNotes("Ebmaj", 4)
	assert.NoError(t, err)
	assert.Equal(t, []Note{
		NewNote("E", Flat, 4),
		NewNote("G", Natural, 4),
		NewNote("B", Flat, 4),
	}, notes)

	// A major sits on the sharp side: A C# E.
	notes, err = ChordToNotes("Amaj", 4)
	assert.NoError(t, err)
	assert.Equal(t, []Note{
		NewNote("A", Natural, 4),
		NewNote("C", Sharp, 5),
		NewNote("E", Natural, 5),
	}, notes)
}

func TestNotesToChordSymbolReduced(t *testing.T) {
	// A doubled root an octave up still resolves through the reduced match.
	notes := []Note{
		NewNote("C", Natural, 4),
		NewNote("E", Natural, 4),
		NewNote("G", Natural, 4),
		NewNote("C", Natural, 5),
	}
	symbol, ok := NotesToChordSymbol(notes)
	assert.True(t, ok)
	assert.Equal(t, "Cmaj", symbol)
}

func TestNotesToChordSymbolUnrecognized(t *testing.T) {
	notes := []Note{
		NewNote("C", Natural, 4),
		NewNote("C", Sharp, 4),
		NewNote("D", Natural, 4),
	}
	_, ok := NotesToChordSymbol(notes)
	assert.False(t, ok)

	_, ok = NotesToChordSymbol(nil)
	assert.False(t, ok)
}

func TestParseChordSymbolErrors(t *testing.T) {
	for _, text := range []string{"", "Hmaj", "Cxyz", "C##maj", "C"} {
		t.Run(fmt.Sprintf("reject %q", text), func(t *testing.T) {
			_, _, err := ParseChordSymbol(text)
			assert.ErrorIs(t, err, ErrInvalidChordSymbol)
		})
	}
}

func TestSpellingPreference(t *testing.T) {
	cases := []struct {
		root    string
		quality string
		want    bool
	}{
		{"C", "maj", false},
		{"F", "maj", true},
		{"C", "min", true},
		{"G", "min", true},
		{"A", "min", false},
		{"E", "dim", false},
		{"Bb", "maj", true},
		{"C", "Minor", true},
		{"D", "Major", false},
		{"X", "maj", false}, // unknown roots default to the sharp side
	}
	for _, tc := range cases {
		t.Run(tc.root+tc.quality, func(t *testing.T) {
			if got := SpellingPreference(tc.root, tc.quality); got != tc.want {
				t.Fatalf("SpellingPreference(%q, %q) = %v, want %v", tc.root, tc.quality, got, tc.want)
			}
		})
	}
}

func TestScaleNotes(t *testing.T) {
	notes, err := ScaleNotes("C", "Major", 4)
	assert.NoError(t, err)
	assert.Equal(t, []Note{
		NewNote("C", Natural, 4),
		NewNote("D", Natural, 4),
		NewNote("E", Natural, 4),
		NewNote("F", Natural, 4),
		NewNote("G", Natural, 4),
		NewNote("A", Natural, 4),
		NewNote("B", Natural, 4),
		NewNote("C", Natural, 5),
	}, notes)

	// F major carries one flat.
	notes, err = ScaleNotes("F", "Major", 4)
	assert.NoError(t, err)
	assert.Equal(t, NewNote("B", Flat, 4), notes[3])

	_, err = ScaleNotes("C", "Chromatic", 4)
	assert.Error(t, err)

	_, err = ScaleNotes("Hb", "Major", 4)
	assert.ErrorIs(t, err, ErrInvalidNote)
}

func TestIntervalTable(t *testing.T) {
	a4, ok := IntervalSemitones("A4")
	assert.True(t, ok)
	d5, ok := IntervalSemitones("d5")
	assert.True(t, ok)
	assert.Equal(t, a4, d5) // intentionally ambiguous by distance

	_, ok = IntervalSemitones("P13")
	assert.False(t, ok)
}

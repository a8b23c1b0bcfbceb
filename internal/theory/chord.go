package theory

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrInvalidChordSymbol reports a chord string that does not parse or names
// an unknown quality.
var ErrInvalidChordSymbol = errors.New("invalid chord symbol")

// Quality is a chord type: a name plus its semitone offsets from the root.
type Quality struct {
	Name    string
	Offsets []int
}

// qualities holds every recognized chord quality in analysis order.
var qualities = []Quality{
	// Triads.
	{"maj", []int{0, 4, 7}},
	{"min", []int{0, 3, 7}},
	{"dim", []int{0, 3, 6}},
	{"aug", []int{0, 4, 8}},
	{"sus4", []int{0, 5, 7}},
	{"sus2", []int{0, 2, 7}},

	// Sixth chords.
	{"maj6", []int{0, 4, 7, 9}},
	{"min6", []int{0, 3, 7, 9}},
	{"6/9", []int{0, 4, 7, 9, 14}},

	// Seventh chords.
	{"7", []int{0, 4, 7, 10}},
	{"maj7", []int{0, 4, 7, 11}},
	{"min7", []int{0, 3, 7, 10}},
	{"dim7", []int{0, 3, 6, 9}},
	{"min7b5", []int{0, 3, 6, 10}},

	// Ninth chords.
	{"9", []int{0, 4, 7, 10, 14}},
	{"maj9", []int{0, 4, 7, 11, 14}},
	{"min9", []int{0, 3, 7, 10, 14}},
	{"min9b5", []int{0, 3, 6, 10, 14}},

	// Added-tone chords.
	{"add9", []int{0, 4, 7, 14}},
	{"minadd9", []int{0, 3, 7, 14}},
}

var qualityOffsets = func() map[string][]int {
	m := make(map[string][]int, len(qualities))
	for _, q := range qualities {
		m[q.Name] = q.Offsets
	}
	return m
}()

// circleOfFifths maps a spelled root to its position on the circle: the
// number of sharps (positive) or flats (negative) in its major key.
var circleOfFifths = map[string]int{
	"C": 0,
	"G": 1, "D": 2, "A": 3, "E": 4, "B": 5, "F#": 6, "C#": 7,
	"F": -1, "Bb": -2, "Eb": -3, "Ab": -4, "Db": -5, "Gb": -6, "Cb": -7,
}

var chordSymbolRe = regexp.MustCompile(`^([a-gA-G])([b#]?)(\w*)$`)

// QualityName reports whether name is a recognized chord quality.
func QualityName(name string) bool {
	_, ok := qualityOffsets[name]
	return ok
}

// SpellingPreference decides sharp versus flat spelling for generated notes
// rooted at a spelled letter (e.g. "Bb") with a chord quality or scale name.
// Roots off the circle score zero; minor and diminished qualities shift the
// score down three positions before the sign is tested.
func SpellingPreference(root, quality string) bool {
	score := circleOfFifths[root]
	lower := strings.ToLower(quality)
	if strings.Contains(lower, "min") || strings.Contains(lower, "dim") {
		score -= 3
	}
	return score < 0
}

// ParseChordSymbol splits a chord string like "Bbmin7" into its root (no
// octave) and quality name.
func ParseChordSymbol(text string) (Note, string, error) {
	m := chordSymbolRe.FindStringSubmatch(text)
	if m == nil {
		return Note{}, "", fmt.Errorf("%w: %q", ErrInvalidChordSymbol, text)
	}
	root := PitchClass(strings.ToUpper(m[1]), Accidental(m[2]))
	quality := m[3]
	if !QualityName(quality) {
		return Note{}, "", fmt.Errorf("%w: unknown quality %q in %q", ErrInvalidChordSymbol, quality, text)
	}
	return root, quality, nil
}

// ChordToNotes expands a chord symbol into spelled notes with the root at
// rootOctave. Notes come back in table order, root first.
func ChordToNotes(symbol string, rootOctave int) ([]Note, error) {
	root, quality, err := ParseChordSymbol(symbol)
	if err != nil {
		return nil, err
	}
	preferFlats := SpellingPreference(root.Name+string(root.Accidental), quality)

	root.Octave = rootOctave
	root.HasOctave = true
	rootSemitone, err := NoteToSemitone(root)
	if err != nil {
		return nil, err
	}

	offsets := qualityOffsets[quality]
	notes := make([]Note, 0, len(offsets))
	for _, offset := range offsets {
		notes = append(notes, SemitoneToNote(rootSemitone+offset, preferFlats))
	}
	return notes, nil
}

// NotesToChordSymbol analyzes a note set, treating the first note as the
// root. It tries an exact offset match against every quality first, then
// retries with offsets reduced modulo 12 and deduplicated so that
// octave-displaced or doubled chord tones still resolve. The second result
// is false when no quality matches either way.
func NotesToChordSymbol(notes []Note) (string, bool) {
	if len(notes) == 0 {
		return "", false
	}
	root := notes[0]
	rootSemitone, err := NoteToSemitone(root)
	if err != nil {
		return "", false
	}

	offsets := make([]int, 0, len(notes))
	for _, n := range notes {
		semitone, err := NoteToSemitone(n)
		if err != nil {
			return "", false
		}
		offsets = append(offsets, semitone-rootSemitone)
	}
	sort.Ints(offsets)

	symbol := root.Name + string(root.Accidental)
	for _, q := range qualities {
		if equalInts(q.Offsets, offsets) {
			return symbol + q.Name, true
		}
	}

	reduced := reduceOffsets(offsets)
	for _, q := range qualities {
		if equalInts(reduceOffsets(q.Offsets), reduced) {
			return symbol + q.Name, true
		}
	}
	return "", false
}

// reduceOffsets maps offsets into a single octave, deduplicates, and sorts.
func reduceOffsets(offsets []int) []int {
	seen := make(map[int]struct{}, len(offsets))
	for _, o := range offsets {
		class := o % 12
		if class < 0 {
			class += 12
		}
		seen[class] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for class := range seen {
		out = append(out, class)
	}
	sort.Ints(out)
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package theory

// Interval is a named distance in semitones. The augmented fourth and the
// diminished fifth both span six semitones; questions about them compare
// labels, never recomputed distances.
type Interval struct {
	Name      string
	Semitones int
}

// Intervals lists every drillable interval in ascending order.
var Intervals = []Interval{
	{"m2", 1},
	{"M2", 2},
	{"m3", 3},
	{"M3", 4},
	{"P4", 5},
	{"A4", 6},
	{"d5", 6},
	{"P5", 7},
	{"m6", 8},
	{"M6", 9},
	{"m7", 10},
	{"M7", 11},
	{"P8", 12},
}

var intervalSemitones = func() map[string]int {
	m := make(map[string]int, len(Intervals))
	for _, iv := range Intervals {
		m[iv.Name] = iv.Semitones
	}
	return m
}()

// IntervalSemitones looks up the semitone distance for an interval label.
func IntervalSemitones(name string) (int, bool) {
	semitones, ok := intervalSemitones[name]
	return semitones, ok
}

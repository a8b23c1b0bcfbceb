package rhythm

// GroupKind classifies a display group.
type GroupKind int

// Display group kinds.
const (
	KindNote GroupKind = iota
	KindRest
	KindBeam
)

// Group is a run of duration tokens the renderer draws as one figure.
// Rest tokens come back with their prefix stripped.
type Group struct {
	Kind   GroupKind
	Tokens []string
}

// beamable tokens are the smallest subdivisions; runs of two or more are
// drawn under a single beam instead of individual flags.
var beamable = map[string]bool{"e": true, "s": true}

// GroupDurations segments a token sequence for the staff renderer. Runs of
// two or more identical beamable tokens become beam groups and interrupt
// whatever note or rest run is accumulating; switching between notes and
// rests also forces a flush.
func GroupDurations(tokens []string) []Group {
	var groups []Group
	var current []string
	currentKind := KindNote

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, Group{Kind: currentKind, Tokens: current})
			current = nil
		}
	}

	for i := 0; i < len(tokens); {
		run := 1
		for i+run < len(tokens) && tokens[i+run] == tokens[i] {
			run++
		}
		token := tokens[i]

		if !IsRest(token) && beamable[token] && run >= 2 {
			flush()
			beam := make([]string, run)
			for j := range beam {
				beam[j] = token
			}
			groups = append(groups, Group{Kind: KindBeam, Tokens: beam})
			i += run
			continue
		}

		kind := KindNote
		if IsRest(token) {
			kind = KindRest
		}
		if len(current) > 0 && kind != currentKind {
			flush()
		}
		currentKind = kind
		for j := 0; j < run; j++ {
			current = append(current, StripRest(token))
		}
		i += run
	}
	flush()
	return groups
}

// Package rhythm models duration tokens, bar generation, and display grouping.
package rhythm

import (
	"math/rand"
	"strings"
	"time"
)

// RestPrefix marks a duration token as a rest ("rq" is a quarter rest).
const RestPrefix = "r"

// beatValues maps a duration code to its length in beats of a 4/4 bar.
var beatValues = map[string]float64{
	"w": 4,
	"h": 2,
	"q": 1,
	"e": 0.5,
	"s": 0.25,
}

// IsRest reports whether a token carries the rest prefix.
func IsRest(token string) bool {
	return strings.HasPrefix(token, RestPrefix)
}

// StripRest removes the rest prefix, leaving the bare duration code.
func StripRest(token string) string {
	return strings.TrimPrefix(token, RestPrefix)
}

// BeatValue returns the beat length of a note or rest token.
func BeatValue(token string) (float64, bool) {
	v, ok := beatValues[StripRest(token)]
	return v, ok
}

// Onset is one generated duration with its offset from the bar start.
type Onset struct {
	Token string
	At    time.Duration
}

// GenerateBar fills one bar with randomly chosen tokens from the allowed
// set, never exceeding the remaining beats. Generation stops early when no
// allowed token fits the space left.
func GenerateBar(rnd *rand.Rand, allowed []string, beatsPerBar float64, beat time.Duration) []Onset {
	var onsets []Onset
	used := 0.0
	for used < beatsPerBar {
		remaining := beatsPerBar - used
		var fitting []string
		for _, token := range allowed {
			if v, ok := BeatValue(token); ok && v <= remaining {
				fitting = append(fitting, token)
			}
		}
		if len(fitting) == 0 {
			break
		}
		token := fitting[rnd.Intn(len(fitting))]
		v, _ := BeatValue(token)
		onsets = append(onsets, Onset{
			Token: token,
			At:    time.Duration(used * float64(beat)),
		})
		used += v
	}
	return onsets
}

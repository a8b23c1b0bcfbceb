// Package catalog holds the exercise metadata: stable ids, slugs, titles,
// and the tutorial text shown before a session starts.
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound reports a slug with no catalog entry.
var ErrNotFound = errors.New("exercise not found")

// TutorialSection is one titled block of tutorial text.
type TutorialSection struct {
	Header string
	Text   []string
}

// Entry describes one exercise.
type Entry struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	Description string
	Tutorial    []TutorialSection
}

// Entries lists every exercise in display order.
var Entries = []Entry{
	{
		ID:          uuid.MustParse("a6c47632-8c34-44eb-b698-6323c27d804f"),
		Slug:        "sight-reading",
		Title:       "Sight Reading",
		Description: "Play as many correct pitches as you can on the scrolling staff. Use a MIDI keyboard or the app's own input.",
		Tutorial: []TutorialSection{
			{
				Header: "Gameplay",
				Text: []string{
					"Notes appear on the staff when the session starts.",
					"Press or play the matching note to earn points.",
					"Get as many answers as you can in 60 seconds.",
					"Three correct answers in a row buy extra time.",
				},
			},
		},
	},
	{
		ID:          uuid.MustParse("09ce13ff-2545-4259-91be-d218a8473fe8"),
		Slug:        "chord-guesser",
		Title:       "Chord Guesser",
		Description: "Name the chord shown on the staff before the round clock runs out. A MIDI keyboard can answer by playing the chord.",
		Tutorial: []TutorialSection{
			{
				Header: "Gameplay",
				Text: []string{
					"A chord appears on the staff with four candidate names.",
					"Pick the right name, or play the chord on a MIDI keyboard.",
					"Each round has its own clock; a timeout costs a try.",
					"After three misses the game is over.",
				},
			},
		},
	},
	{
		ID:          uuid.MustParse("373c9955-4dd8-46ef-a65b-42d4cba67725"),
		Slug:        "interval-drill",
		Title:       "Interval Drill",
		Description: "Name the interval between two played notes. Great for learning the distance between pitches on the fly.",
		Tutorial: []TutorialSection{
			{
				Header: "Gameplay",
				Text: []string{
					"Two notes play back to back, the root first.",
					"Guess the interval in as much time as you need.",
					"Replay the pair as many times as you like.",
					"After three misses the game is over.",
				},
			},
		},
	},
	{
		ID:          uuid.MustParse("3d30f957-c589-43f6-b3f4-b5f37c2feb21"),
		Slug:        "rhythm",
		Title:       "Rhythm Training",
		Description: "Read a one-bar rhythm and tap it back on the beat. Keep going as long as you have tries left.",
		Tutorial: []TutorialSection{
			{
				Header: "Gameplay",
				Text: []string{
					"A rhythm appears on screen, then five count-in clicks set the tempo.",
					"Tap the rhythm back during the following bar.",
					"A tap counts when it lands within 175 ms after its beat.",
					"After three misses the game is over.",
				},
			},
		},
	},
}

// BySlug looks an exercise up by its slug.
func BySlug(slug string) (Entry, error) {
	for _, e := range Entries {
		if e.Slug == slug {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
}

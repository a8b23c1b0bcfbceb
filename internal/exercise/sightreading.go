package exercise

import (
	"sync"

	"github.com/verte-zerg/triad/internal/audio"
	"github.com/verte-zerg/triad/internal/midiin"
	"github.com/verte-zerg/triad/internal/theory"
	"github.com/verte-zerg/triad/internal/timing"
)

// Clef selects the staff range notes are generated in.
type Clef string

// Recognized clefs. Unrecognized clef strings fall back to treble.
const (
	ClefTreble Clef = "treble"
	ClefBass   Clef = "bass"
	ClefGrand  Clef = "grand"
)

const (
	sightSeconds      = 60
	sightStreakTarget = 3
	sightStreakBonus  = 2
)

type semitoneRange struct {
	min, max int
}

type sightPreset struct {
	ranges           map[Clef]semitoneRange
	notesAmount      int
	accidentals      []theory.Accidental
	accidentalChance float64
}

// Note ranges widen with difficulty, as staff semitones (C4 = 48): easy
// stays within the staff, hard reaches the ledger lines on both sides.
var sightPresets = map[Difficulty]sightPreset{
	Easy: {
		ranges: map[Clef]semitoneRange{
			ClefTreble: {48, 60}, // C4..C5
			ClefBass:   {36, 48}, // C3..C4
			ClefGrand:  {41, 53}, // F3..F4
		},
		notesAmount: 25,
	},
	Medium: {
		ranges: map[Clef]semitoneRange{
			ClefTreble: {48, 67}, // C4..G5
			ClefBass:   {29, 48}, // F2..C4
			ClefGrand:  {36, 60}, // C3..C5
		},
		notesAmount:      35,
		accidentals:      []theory.Accidental{theory.Sharp},
		accidentalChance: 0.2,
	},
	Hard: {
		ranges: map[Clef]semitoneRange{
			ClefTreble: {45, 72}, // A3..C6
			ClefBass:   {24, 52}, // C2..E4
			ClefGrand:  {24, 72}, // C2..C6
		},
		notesAmount:      40,
		accidentals:      []theory.Accidental{theory.Sharp, theory.Flat},
		accidentalChance: 0.3,
	},
}

// ScrollingStaff is the drawing surface sight reading scrolls notes across.
// QueueNotes receives the full run of note tokens up front; AdvanceNotes
// shifts the window forward after each correct answer.
type ScrollingStaff interface {
	QueueNotes(tokens []string)
	AdvanceNotes()
}

// SightReading runs a timed note-naming session: a fixed queue of random
// notes, one minute on the clock, and a streak bonus that buys time back.
type SightReading struct {
	mu       sync.Mutex
	deps     Deps
	preset   sightPreset
	rng      semitoneRange
	clef     Clef
	renderer ScrollingStaff

	countdown *timing.Countdown

	queue    []theory.Note
	index    int
	score    int
	correct  int
	total    int
	streak   int
	gameOver bool

	destroyed bool
}

// NewSightReading builds a session for the given difficulty and clef.
// Unknown values fall back to easy and treble.
func NewSightReading(difficulty, clef string, deps Deps) *SightReading {
	preset := sightPresets[ParseDifficulty(difficulty)]
	c := Clef(clef)
	rng, ok := preset.ranges[c]
	if !ok {
		c = ClefTreble
		rng = preset.ranges[ClefTreble]
	}
	s := &SightReading{
		deps:   deps.withDefaults(),
		preset: preset,
		rng:    rng,
		clef:   c,
	}
	s.countdown = timing.NewCountdown(sightSeconds, s.timeUp)
	s.queue = s.generateQueue()
	return s
}

// SetRenderer attaches the staff surface and queues the generated notes on
// it. The first renderer wins.
func (s *SightReading) SetRenderer(r ScrollingStaff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renderer != nil {
		return
	}
	s.renderer = r
	r.QueueNotes(noteTokens(s.queue))
}

// Start arms the countdown.
func (s *SightReading) Start() {
	s.countdown.Start()
}

// HandleNote scores a played or typed note against the current target.
// Octave-less input matches any octave of the right letter and accidental.
func (s *SightReading) HandleNote(input theory.Note) {
	s.mu.Lock()
	if s.gameOver || s.destroyed || s.index >= len(s.queue) {
		s.mu.Unlock()
		return
	}
	target := s.queue[s.index]
	ok := theory.Matches(input, target)
	s.total++
	if ok {
		s.score++
		s.correct++
		s.streak++
		if s.streak >= sightStreakTarget {
			s.streak = 0
			defer s.countdown.AddTime(sightStreakBonus)
		}
		s.index++
		if s.renderer != nil {
			s.renderer.AdvanceNotes()
		}
		if s.index >= len(s.queue) {
			s.gameOver = true
			defer s.countdown.Stop()
		}
	} else {
		s.streak = 0
	}
	s.mu.Unlock()

	if ok {
		s.deps.Tone.PlayNote(target)
	} else {
		s.deps.SFX.Play(audio.CueWrong)
	}
}

// HandleMIDI feeds a coalesced MIDI attack into the session. A chord attack
// can never match a single target note and scores as a miss.
func (s *SightReading) HandleMIDI(msg midiin.Message) {
	if msg.Type != midiin.TypeNoteOn {
		return
	}
	switch msg.Attack {
	case midiin.AttackSingle:
		s.HandleNote(msg.Notes[0])
	case midiin.AttackChord:
		s.mu.Lock()
		over := s.gameOver || s.destroyed
		if !over {
			s.total++
			s.streak = 0
		}
		s.mu.Unlock()
		if !over {
			s.deps.SFX.Play(audio.CueWrong)
		}
	}
}

// Current returns the note waiting to be answered. The second result is
// false once the queue is exhausted.
func (s *SightReading) Current() (theory.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index >= len(s.queue) {
		return theory.Note{}, false
	}
	return s.queue[s.index], true
}

// Score returns the running score.
func (s *SightReading) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Progress returns correct answers and total attempts.
func (s *SightReading) Progress() (correct, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct, s.total
}

// TimeLeft returns the remaining whole seconds.
func (s *SightReading) TimeLeft() int {
	return s.countdown.Remaining()
}

// TimeLeftString formats the remaining time as m:ss.
func (s *SightReading) TimeLeftString() string {
	return s.countdown.Format()
}

// IsGameOver reports whether the session has ended, by timeout or by
// clearing the queue.
func (s *SightReading) IsGameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

// Reset restores a fresh queue and a full clock. It does nothing before
// the current run ends.
func (s *SightReading) Reset() {
	s.mu.Lock()
	if !s.gameOver || s.destroyed {
		s.mu.Unlock()
		return
	}
	s.queue = s.generateQueue()
	s.index = 0
	s.score = 0
	s.correct = 0
	s.total = 0
	s.streak = 0
	s.gameOver = false
	r := s.renderer
	queue := s.queue
	s.mu.Unlock()

	if r != nil {
		r.QueueNotes(noteTokens(queue))
	}
	s.countdown.Reset()
	s.countdown.Start()
}

// Destroy stops the countdown. The session accepts no input afterwards.
func (s *SightReading) Destroy() {
	s.mu.Lock()
	s.destroyed = true
	s.mu.Unlock()
	s.countdown.Stop()
}

func (s *SightReading) timeUp() {
	s.mu.Lock()
	s.gameOver = true
	s.mu.Unlock()
}

// generateQueue draws notesAmount random notes inside the clef range,
// avoiding immediate repeats and rolling accidentals per the preset.
func (s *SightReading) generateQueue() []theory.Note {
	rnd := s.deps.Rand
	queue := make([]theory.Note, 0, s.preset.notesAmount)
	prev := -1
	for len(queue) < s.preset.notesAmount {
		semitone := theory.ClampToNatural(s.rng.min + rnd.Intn(s.rng.max-s.rng.min+1))
		if semitone == prev {
			continue
		}
		prev = semitone
		note := theory.SemitoneToNote(semitone, false)
		if len(s.preset.accidentals) > 0 && rnd.Float64() < s.preset.accidentalChance {
			acc := s.preset.accidentals[rnd.Intn(len(s.preset.accidentals))]
			if spellable(note.Name, acc) {
				note.Accidental = acc
			}
		}
		queue = append(queue, note)
	}
	return queue
}

// spellable rejects accidental spellings that land on another natural,
// such as E# or Fb.
func spellable(name string, acc theory.Accidental) bool {
	switch acc {
	case theory.Sharp:
		return name != "E" && name != "B"
	case theory.Flat:
		return name != "F" && name != "C"
	}
	return true
}

// noteTokens renders notes as staff tokens, quarter duration throughout.
func noteTokens(notes []theory.Note) []string {
	tokens := make([]string, len(notes))
	for i, n := range notes {
		tokens[i] = n.String() + "q"
	}
	return tokens
}

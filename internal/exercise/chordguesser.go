package exercise

import (
	"sync"
	"time"

	"github.com/verte-zerg/triad/internal/audio"
	"github.com/verte-zerg/triad/internal/midiin"
	"github.com/verte-zerg/triad/internal/theory"
	"github.com/verte-zerg/triad/internal/timing"
)

const (
	chordTries       = 3
	chordOptionCount = 4
	chordRootOctave  = 4
	chordNextDelay   = time.Second
)

type chordPreset struct {
	qualities   []string
	timeToGuess int
}

var chordPresets = map[Difficulty]chordPreset{
	Easy:   {qualities: []string{"maj", "min"}, timeToGuess: 10},
	Medium: {qualities: []string{"maj", "min", "maj7", "min7"}, timeToGuess: 8},
	Hard:   {qualities: []string{"maj", "min", "dim", "aug", "maj7", "min7", "7"}, timeToGuess: 6},
}

// ChordStaff is the drawing surface the chord guesser renders each round's
// chord on.
type ChordStaff interface {
	DrawChord(tokens []string)
	ClearAll()
}

// ChordGuesser runs a multiple-choice chord recognition session. Each round
// draws a random chord, offers four candidate symbols, and counts down a
// per-round clock; the first answer in wins the round either way.
type ChordGuesser struct {
	mu       sync.Mutex
	deps     Deps
	preset   chordPreset
	renderer ChordStaff

	tick  timing.TickScheduler
	tries *timing.TriesCounter
	next  *time.Timer

	symbol   string
	notes    []theory.Note
	options  []string
	timeLeft int

	score     int
	correct   int
	rounds    int
	listening bool
	answered  bool
	gameOver  bool
	destroyed bool
}

// NewChordGuesser builds a session for the given difficulty.
func NewChordGuesser(difficulty string, deps Deps) *ChordGuesser {
	g := &ChordGuesser{
		deps:   deps.withDefaults(),
		preset: chordPresets[ParseDifficulty(difficulty)],
	}
	g.tries = timing.NewTriesCounter(chordTries, g.triesOut)
	return g
}

// SetRenderer attaches the staff surface. The first renderer wins.
func (g *ChordGuesser) SetRenderer(r ChordStaff) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.renderer == nil {
		g.renderer = r
	}
}

// Start launches the first round.
func (g *ChordGuesser) Start() {
	go g.round()
}

// round runs one question to completion: generate, count down, and if no
// answer arrived in time, score the timeout as a miss.
func (g *ChordGuesser) round() {
	if !g.beginRound() {
		return
	}
	done := g.tick.Run(g.preset.timeToGuess, time.Second, g.onSecond, false)
	<-done

	g.mu.Lock()
	g.listening = false
	answered := g.answered
	g.mu.Unlock()

	if !answered {
		g.handleIncorrect()
	}
}

func (g *ChordGuesser) beginRound() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gameOver || g.destroyed {
		return false
	}

	rnd := g.deps.Rand
	g.symbol = g.randomSymbolLocked()
	notes, err := theory.ChordToNotes(g.symbol, chordRootOctave)
	if err != nil {
		// Qualities come from the preset table, so this cannot happen.
		return false
	}
	g.notes = notes

	seen := map[string]bool{g.symbol: true}
	options := []string{g.symbol}
	for len(options) < chordOptionCount {
		candidate := g.randomSymbolLocked()
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		options = append(options, candidate)
	}
	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	g.options = options

	g.timeLeft = g.preset.timeToGuess
	g.answered = false
	g.listening = true
	g.rounds++

	if g.renderer != nil {
		g.renderer.DrawChord(noteTokens(notes))
	}
	return true
}

// randomSymbolLocked draws a natural root plus a preset quality.
func (g *ChordGuesser) randomSymbolLocked() string {
	rnd := g.deps.Rand
	root := theory.NaturalNoteNames[rnd.Intn(len(theory.NaturalNoteNames))]
	quality := g.preset.qualities[rnd.Intn(len(g.preset.qualities))]
	return root + quality
}

func (g *ChordGuesser) onSecond() {
	g.deps.SFX.Play(audio.CueTickDown)
	g.mu.Lock()
	if g.timeLeft > 0 {
		g.timeLeft--
	}
	g.mu.Unlock()
}

// HandleAnswer scores a candidate symbol. Input outside a live round, or
// after the round already has an answer, is dropped.
func (g *ChordGuesser) HandleAnswer(symbol string) {
	g.mu.Lock()
	if g.gameOver || g.destroyed || !g.listening || g.answered {
		g.mu.Unlock()
		return
	}
	g.answered = true
	g.listening = false
	correct := symbol == g.symbol
	notes := g.notes
	g.mu.Unlock()

	g.tick.Stop()
	if correct {
		g.deps.Tone.PlayChord(notes)
		g.mu.Lock()
		g.score++
		g.correct++
		g.mu.Unlock()
		g.scheduleNext()
	} else {
		g.handleIncorrect()
	}
}

// HandleMIDI scores a coalesced chord attack by analyzing the played note
// set. Single-note attacks are ignored; a chord attack that spells no
// recognized chord counts as a wrong answer.
func (g *ChordGuesser) HandleMIDI(msg midiin.Message) {
	if msg.Type != midiin.TypeNoteOn || msg.Attack != midiin.AttackChord {
		return
	}
	symbol, _ := theory.NotesToChordSymbol(msg.Notes)
	g.HandleAnswer(symbol)
}

func (g *ChordGuesser) handleIncorrect() {
	g.deps.SFX.Play(audio.CueWrong)
	g.tries.Decrement()
	g.mu.Lock()
	over := g.gameOver
	g.mu.Unlock()
	if !over {
		g.scheduleNext()
	}
}

func (g *ChordGuesser) scheduleNext() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gameOver || g.destroyed {
		return
	}
	g.next = time.AfterFunc(chordNextDelay, g.round)
}

func (g *ChordGuesser) triesOut() {
	g.mu.Lock()
	g.gameOver = true
	g.listening = false
	g.mu.Unlock()
	g.tick.Stop()
}

// Options returns the current round's answer candidates.
func (g *ChordGuesser) Options() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.options))
	copy(out, g.options)
	return out
}

// CurrentSymbol returns the symbol of the chord on the staff.
func (g *ChordGuesser) CurrentSymbol() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.symbol
}

// TriesLeft returns the remaining misses before game over.
func (g *ChordGuesser) TriesLeft() int {
	return g.tries.Remaining()
}

// TimeLeft returns the seconds left in the current round, zero between
// rounds.
func (g *ChordGuesser) TimeLeft() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.listening {
		return 0
	}
	return g.timeLeft
}

// Score returns the running score.
func (g *ChordGuesser) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

// Progress returns correct answers and rounds played.
func (g *ChordGuesser) Progress() (correct, rounds int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.correct, g.rounds
}

// IsListening reports whether a round is accepting answers.
func (g *ChordGuesser) IsListening() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listening
}

// IsGameOver reports whether the tries ran out.
func (g *ChordGuesser) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gameOver
}

// Reset re-arms the tries and starts over. It does nothing before the
// current run ends.
func (g *ChordGuesser) Reset() {
	g.mu.Lock()
	if !g.gameOver || g.destroyed {
		g.mu.Unlock()
		return
	}
	g.score = 0
	g.correct = 0
	g.rounds = 0
	g.gameOver = false
	g.answered = false
	g.mu.Unlock()

	g.tries.Reset()
	go g.round()
}

// Destroy cancels the round clock and any pending round transition. The
// session accepts no input afterwards.
func (g *ChordGuesser) Destroy() {
	g.mu.Lock()
	g.destroyed = true
	g.listening = false
	next := g.next
	g.mu.Unlock()

	if next != nil {
		next.Stop()
	}
	g.tick.Stop()
}

package exercise

import (
	"sync"
	"time"

	"github.com/verte-zerg/triad/internal/audio"
	"github.com/verte-zerg/triad/internal/theory"
	"github.com/verte-zerg/triad/internal/timing"
)

const (
	intervalTries       = 3
	intervalOptionCount = 4
	intervalRootOctave  = 4
	intervalBeat        = 750 * time.Millisecond
	intervalNextDelay   = time.Second
)

type intervalPreset struct {
	labels []string
}

var intervalPresets = map[Difficulty]intervalPreset{
	Easy:   {labels: []string{"m3", "M3", "P4", "P5", "P8"}},
	Medium: {labels: []string{"m2", "M2", "m3", "M3", "P4", "P5", "m6", "M6", "P8"}},
	Hard: {labels: func() []string {
		labels := make([]string, len(theory.Intervals))
		for i, iv := range theory.Intervals {
			labels[i] = iv.Name
		}
		return labels
	}()},
}

// IntervalStaff is the drawing surface the interval drill renders question
// notes on.
type IntervalStaff interface {
	DrawChord(tokens []string)
	JustifyNotes()
	ClearAll()
}

// IntervalDrill runs an ear-training session: two notes play back to back,
// and the player names the interval between them from four candidates.
// There is no per-round clock; a question waits until answered or skipped.
type IntervalDrill struct {
	mu       sync.Mutex
	deps     Deps
	preset   intervalPreset
	renderer IntervalStaff

	tick  timing.TickScheduler
	tries *timing.TriesCounter
	next  *time.Timer

	label   string
	root    theory.Note
	second  theory.Note
	options []string
	playPos int

	score     int
	correct   int
	rounds    int
	listening bool
	gameOver  bool
	destroyed bool
}

// NewIntervalDrill builds a session for the given difficulty.
func NewIntervalDrill(difficulty string, deps Deps) *IntervalDrill {
	d := &IntervalDrill{
		deps:   deps.withDefaults(),
		preset: intervalPresets[ParseDifficulty(difficulty)],
	}
	d.tries = timing.NewTriesCounter(intervalTries, d.triesOut)
	return d
}

// SetRenderer attaches the staff surface. The first renderer wins.
func (d *IntervalDrill) SetRenderer(r IntervalStaff) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.renderer == nil {
		d.renderer = r
	}
}

// StartGameLoop asks the first question. It fails fast when no renderer is
// attached, since every question draws its notes.
func (d *IntervalDrill) StartGameLoop() error {
	d.mu.Lock()
	if d.renderer == nil {
		d.mu.Unlock()
		return ErrNoRenderer
	}
	d.mu.Unlock()
	d.newQuestion()
	return nil
}

// newQuestion picks a root and an interval, draws the pair, and plays it.
func (d *IntervalDrill) newQuestion() {
	d.mu.Lock()
	if d.gameOver || d.destroyed {
		d.mu.Unlock()
		return
	}
	rnd := d.deps.Rand

	rootName := theory.NaturalNoteNames[rnd.Intn(len(theory.NaturalNoteNames))]
	d.root = theory.NewNote(rootName, theory.Natural, intervalRootOctave)
	d.label = d.preset.labels[rnd.Intn(len(d.preset.labels))]

	rootSemitone, _ := theory.NoteToSemitone(d.root)
	distance, _ := theory.IntervalSemitones(d.label)
	d.second = theory.SemitoneToNote(rootSemitone+distance, false)

	seen := map[string]bool{d.label: true}
	options := []string{d.label}
	for len(options) < intervalOptionCount {
		candidate := theory.Intervals[rnd.Intn(len(theory.Intervals))].Name
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		options = append(options, candidate)
	}
	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	d.options = options

	d.listening = true
	d.rounds++

	r := d.renderer
	tokens := noteTokens([]theory.Note{d.root, d.second})
	d.mu.Unlock()

	if r != nil {
		r.ClearAll()
		r.DrawChord(tokens)
		r.JustifyNotes()
	}
	d.play()
}

// play schedules the two-note playback, one note per beat. Replays restart
// the sequence.
func (d *IntervalDrill) play() {
	d.mu.Lock()
	if d.gameOver || d.destroyed {
		d.mu.Unlock()
		return
	}
	d.playPos = 0
	d.mu.Unlock()
	d.tick.Run(2, intervalBeat, d.onPlayTick, true)
}

func (d *IntervalDrill) onPlayTick() {
	d.mu.Lock()
	var note theory.Note
	switch d.playPos {
	case 0:
		note = d.root
	case 1:
		note = d.second
	default:
		d.mu.Unlock()
		return
	}
	d.playPos++
	d.mu.Unlock()
	d.deps.Tone.PlayNote(note)
}

// Replay plays the current question again. Allowed any number of times
// while the question is open.
func (d *IntervalDrill) Replay() {
	d.mu.Lock()
	ok := d.listening && !d.gameOver && !d.destroyed
	d.mu.Unlock()
	if ok {
		d.play()
	}
}

// HandleAnswer scores a candidate label against the question's label. The
// augmented fourth and the diminished fifth stay distinct answers even
// though they span the same distance.
func (d *IntervalDrill) HandleAnswer(label string) {
	d.mu.Lock()
	if d.gameOver || d.destroyed || !d.listening {
		d.mu.Unlock()
		return
	}
	d.listening = false
	correct := label == d.label
	root, second := d.root, d.second
	d.mu.Unlock()

	d.tick.Stop()
	if correct {
		d.deps.Tone.PlayChord([]theory.Note{root, second})
		d.mu.Lock()
		d.score++
		d.correct++
		d.mu.Unlock()
		d.scheduleNext()
	} else {
		d.deps.SFX.Play(audio.CueWrong)
		d.tries.Decrement()
		d.mu.Lock()
		over := d.gameOver
		d.mu.Unlock()
		if !over {
			d.scheduleNext()
		}
	}
}

// Skip gives up on the current question. It costs a try.
func (d *IntervalDrill) Skip() {
	d.mu.Lock()
	if d.gameOver || d.destroyed || !d.listening {
		d.mu.Unlock()
		return
	}
	d.listening = false
	d.mu.Unlock()

	d.tick.Stop()
	d.deps.SFX.Play(audio.CueWrong)
	d.tries.Decrement()
	d.mu.Lock()
	over := d.gameOver
	d.mu.Unlock()
	if !over {
		d.scheduleNext()
	}
}

func (d *IntervalDrill) scheduleNext() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gameOver || d.destroyed {
		return
	}
	d.next = time.AfterFunc(intervalNextDelay, d.newQuestion)
}

func (d *IntervalDrill) triesOut() {
	d.mu.Lock()
	d.gameOver = true
	d.listening = false
	d.mu.Unlock()
	d.tick.Stop()
}

// Options returns the current question's answer candidates.
func (d *IntervalDrill) Options() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.options))
	copy(out, d.options)
	return out
}

// CurrentLabel returns the label of the interval being asked.
func (d *IntervalDrill) CurrentLabel() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.label
}

// TriesLeft returns the remaining misses before game over.
func (d *IntervalDrill) TriesLeft() int {
	return d.tries.Remaining()
}

// Score returns the running score.
func (d *IntervalDrill) Score() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.score
}

// Progress returns correct answers and questions asked.
func (d *IntervalDrill) Progress() (correct, rounds int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.correct, d.rounds
}

// IsListening reports whether a question is accepting answers.
func (d *IntervalDrill) IsListening() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listening
}

// IsGameOver reports whether the tries ran out.
func (d *IntervalDrill) IsGameOver() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gameOver
}

// Reset re-arms the tries and asks a new question. It does nothing before
// the current run ends.
func (d *IntervalDrill) Reset() {
	d.mu.Lock()
	if !d.gameOver || d.destroyed {
		d.mu.Unlock()
		return
	}
	d.score = 0
	d.correct = 0
	d.rounds = 0
	d.gameOver = false
	d.mu.Unlock()

	d.tries.Reset()
	d.newQuestion()
}

// Destroy cancels playback and any pending question transition. The
// session accepts no input afterwards.
func (d *IntervalDrill) Destroy() {
	d.mu.Lock()
	d.destroyed = true
	d.listening = false
	next := d.next
	d.mu.Unlock()

	if next != nil {
		next.Stop()
	}
	d.tick.Stop()
}

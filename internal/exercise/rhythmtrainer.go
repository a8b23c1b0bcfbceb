package exercise

import (
	"sync"
	"time"

	"github.com/verte-zerg/triad/internal/audio"
	"github.com/verte-zerg/triad/internal/rhythm"
	"github.com/verte-zerg/triad/internal/timing"
)

const (
	rhythmTries       = 3
	rhythmBeat        = 750 * time.Millisecond
	rhythmBeatsPerBar = 4
	rhythmCountIn     = 5
	rhythmTapWindow   = 175 * time.Millisecond
	rhythmNextDelay   = time.Second
)

type rhythmPreset struct {
	durations []string
}

var rhythmPresets = map[Difficulty]rhythmPreset{
	Easy:   {durations: []string{"w", "h", "q"}},
	Medium: {durations: []string{"w", "h", "q", "e"}},
	Hard:   {durations: []string{"w", "h", "q", "e"}},
}

// RhythmStaff is the drawing surface the rhythm trainer renders each bar's
// grouped durations on.
type RhythmStaff interface {
	DrawRhythm(groups []rhythm.Group)
	ClearAll()
}

// RhythmTrainer runs a tapping session: a random one-bar rhythm goes up on
// the staff, five count-in ticks set the tempo, and the player taps the
// rhythm back inside a listening window one bar long.
type RhythmTrainer struct {
	mu       sync.Mutex
	deps     Deps
	preset   rhythmPreset
	renderer RhythmStaff

	tick  timing.TickScheduler
	tries *timing.TriesCounter
	next  *time.Timer

	onsets      []rhythm.Onset
	taps        []time.Duration
	listenStart time.Time
	countIn     int

	score     int
	correct   int
	rounds    int
	listening bool
	gameOver  bool
	destroyed bool
}

// NewRhythmTrainer builds a session for the given difficulty.
func NewRhythmTrainer(difficulty string, deps Deps) *RhythmTrainer {
	r := &RhythmTrainer{
		deps:   deps.withDefaults(),
		preset: rhythmPresets[ParseDifficulty(difficulty)],
	}
	r.tries = timing.NewTriesCounter(rhythmTries, r.triesOut)
	return r
}

// SetRenderer attaches the staff surface. The first renderer wins.
func (r *RhythmTrainer) SetRenderer(s RhythmStaff) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderer == nil {
		r.renderer = s
	}
}

// StartGameLoop launches the first round. It fails fast when no renderer
// is attached, since the player taps what they read.
func (r *RhythmTrainer) StartGameLoop() error {
	r.mu.Lock()
	if r.renderer == nil {
		r.mu.Unlock()
		return ErrNoRenderer
	}
	r.mu.Unlock()
	go r.round()
	return nil
}

// round runs one bar to completion: draw, count in, listen, score.
func (r *RhythmTrainer) round() {
	r.mu.Lock()
	if r.gameOver || r.destroyed {
		r.mu.Unlock()
		return
	}
	tokens := r.generateBarLocked()
	r.countIn = rhythmCountIn
	r.rounds++
	renderer := r.renderer
	r.mu.Unlock()

	renderer.DrawRhythm(rhythm.GroupDurations(tokens))

	<-r.tick.Run(rhythmCountIn, rhythmBeat, r.onCountInTick, true)

	r.mu.Lock()
	if r.gameOver || r.destroyed {
		r.mu.Unlock()
		return
	}
	r.taps = nil
	r.listening = true
	r.listenStart = time.Now()
	r.mu.Unlock()

	// The window spans one bar; the metronome keeps clicking through it.
	<-r.tick.Run(rhythmBeatsPerBar+1, rhythmBeat, func() {
		r.deps.SFX.Play(audio.CueTickDown)
	}, true)

	r.mu.Lock()
	if r.gameOver || r.destroyed || !r.listening {
		r.mu.Unlock()
		return
	}
	r.listening = false
	taps := make([]time.Duration, len(r.taps))
	copy(taps, r.taps)
	onsets := r.onsets
	r.mu.Unlock()

	if validateTaps(taps, onsets) {
		r.deps.SFX.Play(audio.CueCorrect)
		r.mu.Lock()
		r.score++
		r.correct++
		r.mu.Unlock()
		r.scheduleNext()
	} else {
		r.deps.SFX.Play(audio.CueWrong)
		r.tries.Decrement()
		r.mu.Lock()
		over := r.gameOver
		r.mu.Unlock()
		if !over {
			r.scheduleNext()
		}
	}
}

// generateBarLocked fills a fresh bar and records its expected onsets.
func (r *RhythmTrainer) generateBarLocked() []string {
	onsets := rhythm.GenerateBar(r.deps.Rand, r.preset.durations, rhythmBeatsPerBar, rhythmBeat)
	r.onsets = onsets
	tokens := make([]string, len(onsets))
	for i, o := range onsets {
		tokens[i] = o.Token
	}
	return tokens
}

// onCountInTick steps the count-in display and clicks. The first click is
// accented, the rest are plain.
func (r *RhythmTrainer) onCountInTick() {
	r.mu.Lock()
	r.countIn--
	first := r.countIn == rhythmCountIn-1
	r.mu.Unlock()

	if first {
		r.deps.SFX.Play(audio.CueTickUp)
	} else {
		r.deps.SFX.Play(audio.CueTickDown)
	}
}

// HandleTap records a tap timestamp relative to the window start. Taps
// outside the listening window are dropped.
func (r *RhythmTrainer) HandleTap() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.listening || r.gameOver || r.destroyed {
		return
	}
	r.taps = append(r.taps, time.Since(r.listenStart))
}

// validateTaps scores a tap run against the expected onsets. The counts
// must match, and every tap must land at or after its onset but no more
// than the tap window late. An early tap fails even inside the window.
func validateTaps(taps []time.Duration, onsets []rhythm.Onset) bool {
	if len(taps) != len(onsets) {
		return false
	}
	for i, tap := range taps {
		diff := tap - onsets[i].At
		if diff < 0 || diff > rhythmTapWindow {
			return false
		}
	}
	return true
}

func (r *RhythmTrainer) scheduleNext() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gameOver || r.destroyed {
		return
	}
	r.next = time.AfterFunc(rhythmNextDelay, r.round)
}

func (r *RhythmTrainer) triesOut() {
	r.mu.Lock()
	r.gameOver = true
	r.listening = false
	r.mu.Unlock()
	r.tick.Stop()
}

// CountIn returns the remaining count-in beats, zero once tapping starts.
func (r *RhythmTrainer) CountIn() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countIn
}

// TriesLeft returns the remaining misses before game over.
func (r *RhythmTrainer) TriesLeft() int {
	return r.tries.Remaining()
}

// Score returns the running score.
func (r *RhythmTrainer) Score() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.score
}

// Progress returns correct bars and bars played.
func (r *RhythmTrainer) Progress() (correct, rounds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.correct, r.rounds
}

// IsListening reports whether the tapping window is open.
func (r *RhythmTrainer) IsListening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

// IsGameOver reports whether the tries ran out.
func (r *RhythmTrainer) IsGameOver() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gameOver
}

// Reset re-arms the tries and starts a new bar. It does nothing before the
// current run ends.
func (r *RhythmTrainer) Reset() {
	r.mu.Lock()
	if !r.gameOver || r.destroyed {
		r.mu.Unlock()
		return
	}
	r.score = 0
	r.correct = 0
	r.rounds = 0
	r.gameOver = false
	r.mu.Unlock()

	r.tries.Reset()
	go r.round()
}

// Destroy cancels the metronome and any pending round transition. The
// session accepts no input afterwards.
func (r *RhythmTrainer) Destroy() {
	r.mu.Lock()
	r.destroyed = true
	r.listening = false
	next := r.next
	r.mu.Unlock()

	if next != nil {
		next.Stop()
	}
	r.tick.Stop()
}

package audio

import (
	"bytes"
	"math"
	"testing"

	"github.com/verte-zerg/triad/internal/theory"
)

func TestSampleFor(t *testing.T) {
	cases := []struct {
		note theory.Note
		want Sample
	}{
		{theory.NewNote("C", theory.Natural, 4), Sample{"C4", 0}},
		{theory.NewNote("G", theory.Natural, 4), Sample{"G4", 0}},
		{theory.NewNote("A", theory.Natural, 4), Sample{"G4", 2}},
		{theory.NewNote("B", theory.Natural, 3), Sample{"C4", -1}},
		{theory.NewNote("C", theory.Sharp, 4), Sample{"C4", 1}},
		{theory.NewNote("B", theory.Flat, 4), Sample{"C5", -2}},
		{theory.NewNote("E", theory.Natural, 8), Sample{"C8", 4}},
	}
	for _, tc := range cases {
		t.Run(tc.note.String(), func(t *testing.T) {
			got, ok := SampleFor(tc.note)
			if !ok {
				t.Fatalf("SampleFor(%s) reported unplayable", tc.note)
			}
			if got != tc.want {
				t.Fatalf("SampleFor(%s) = %+v, want %+v", tc.note, got, tc.want)
			}
		})
	}
}

func TestSampleForOctaveless(t *testing.T) {
	if _, ok := SampleFor(theory.PitchClass("C", theory.Natural)); ok {
		t.Fatalf("octave-less notes must not resolve to a sample")
	}
}

func TestRate(t *testing.T) {
	if got := Rate(0); got != 1 {
		t.Fatalf("Rate(0) = %v", got)
	}
	if got := Rate(12); math.Abs(got-2) > 1e-9 {
		t.Fatalf("Rate(12) = %v, want 2", got)
	}
	if got := Rate(-12); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("Rate(-12) = %v, want 0.5", got)
	}
}

func TestBellSFX(t *testing.T) {
	var buf bytes.Buffer
	bell := NewBellSFX(&buf, 50)
	bell.Play(CueTickDown)
	if buf.Len() != 0 {
		t.Fatalf("tick cues should be silent")
	}
	bell.Play(CueWrong)
	if buf.String() != "\a" {
		t.Fatalf("expected a bell, got %q", buf.String())
	}
	bell.SetVolume(0)
	bell.Play(CueCorrect)
	if buf.String() != "\a" {
		t.Fatalf("muted bell still rang")
	}
}

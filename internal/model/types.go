// Package model defines shared data structures.
package model

// Config defines the resolved session settings after merging flags with
// the config file.
type Config struct {
	Difficulty string
	Clef       string
	MIDIPort   string
	Theme      string
	Volume     int
}

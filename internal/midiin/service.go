package midiin

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Service owns a MIDI input port and fans normalized messages out to
// subscribers. Messages arrive on listener/timer goroutines; subscribers
// guard their own state.
type Service struct {
	drv    *rtmididrv.Driver
	in     drivers.In
	stopFn func()
	co     *Coalescer

	mu   sync.Mutex
	subs []func(Message)
}

// Open initializes the rtmidi driver and connects to the first input whose
// name contains portName, or to the first available input when portName is
// empty. Call Close when done.
func Open(portName string) (*Service, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}

	svc := &Service{drv: drv}
	svc.co = NewCoalescer(svc.publish)

	in, err := pickInput(drv, portName)
	if err != nil {
		drv.Close()
		return nil, err
	}
	if err := in.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("open %q: %w", in.String(), err)
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			svc.co.NoteOn(int(key))
		case msg.GetNoteEnd(&ch, &key):
			svc.co.NoteOff(int(key))
		default:
			slog.Debug("midi: unhandled message", "msg", msg.String())
		}
	}, midi.HandleError(func(listenErr error) {
		slog.Warn("midi: listener error", "device", in.String(), "err", listenErr)
	}))
	if err != nil {
		_ = in.Close()
		drv.Close()
		return nil, fmt.Errorf("listen %q: %w", in.String(), err)
	}

	svc.in = in
	svc.stopFn = stop
	slog.Info("midi: connected", "device", in.String())
	return svc, nil
}

// Ports lists the available MIDI input names.
func Ports() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	defer drv.Close()
	ins, err := drv.Ins()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names, nil
}

// Subscribe registers a message callback.
func (s *Service) Subscribe(fn func(Message)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Close stops the listener and shuts down the driver.
func (s *Service) Close() {
	if s.stopFn != nil {
		s.stopFn()
		s.stopFn = nil
	}
	if s.in != nil {
		_ = s.in.Close()
		s.in = nil
	}
	if s.drv != nil {
		s.drv.Close()
		s.drv = nil
	}
}

func (s *Service) publish(msg Message) {
	s.mu.Lock()
	subs := make([]func(Message), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(msg)
	}
}

func pickInput(drv *rtmididrv.Driver, portName string) (drivers.In, error) {
	ins, err := drv.Ins()
	if err != nil {
		return nil, err
	}
	if len(ins) == 0 {
		return nil, fmt.Errorf("no MIDI inputs available")
	}
	if portName == "" {
		return ins[0], nil
	}
	for _, in := range ins {
		if strings.Contains(strings.ToLower(in.String()), strings.ToLower(portName)) {
			return in, nil
		}
	}
	return nil, fmt.Errorf("MIDI input %q not found", portName)
}

package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Port sends events to a MIDI output. The zero value and a nil *Port
// discard everything.
type Port struct {
	name string
	mu   sync.Mutex
	send func(msg gomidi.Message) error
}

// OpenPort opens the first output port whose name contains name
func OpenPort(name string) (*Port, error) {
	for _, out := range gomidi.GetOutPorts() {
		if !containsCI(out.String(), name) {
			continue
		}
		send, err := gomidi.SendTo(out)
		if err != nil {
			return nil, fmt.Errorf("open output %s: %w", out.String(), err)
		}
		return &Port{name: out.String(), send: send}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrPortNotFound, name)
}

// NewPort wraps an arbitrary send function
func NewPort(name string, send func(msg gomidi.Message) error) *Port {
	return &Port{name: name, send: send}
}

// Name returns the port name
func (p *Port) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// Send writes the events in order
func (p *Port) Send(events []Event) error {
	if p == nil || p.send == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range events {
		if err := p.send(e.Message()); err != nil {
			return fmt.Errorf("send to %s: %w", p.name, err)
		}
	}
	return nil
}

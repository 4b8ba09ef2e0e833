package midi

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"simon-piano/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrPortNotFound is returned when no port matches a requested name
var ErrPortNotFound = errors.New("midi port not found")

// ExcludedPatterns are virtual/system ports that are never auto-connected
var ExcludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of MIDI controllers. It connects
// every Launchpad it sees and one keyboard: the port named Keyboard if set,
// otherwise the first port that is neither excluded nor a Launchpad.
type DeviceManager struct {
	Keyboard  string // preferred keyboard port name (substring, case-insensitive)
	Launchpad bool   // connect Launchpads

	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
}

// NewDeviceManager creates a new device manager
func NewDeviceManager(keyboard string, launchpad bool) *DeviceManager {
	return &DeviceManager{
		Keyboard:    keyboard,
		Launchpad:   launchpad,
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

// Ports lists input and output port names, giving up after timeout
// (CoreMIDI can hang)
func Ports(timeout time.Duration) (ins, outs []string, err error) {
	inPorts, outPorts, ok := listPorts(timeout)
	if !ok {
		return nil, nil, errors.New("listing midi ports timed out")
	}
	for _, p := range inPorts {
		ins = append(ins, p.String())
	}
	for _, p := range outPorts {
		outs = append(outs, p.String())
	}
	return ins, outs, nil
}

func listPorts(timeout time.Duration) ([]drivers.In, []drivers.Out, bool) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		inPorts := gomidi.GetInPorts()
		outPorts := gomidi.GetOutPorts()
		ch <- portsResult{inPorts: inPorts, outPorts: outPorts}
	}()

	select {
	case result := <-ch:
		return result.inPorts, result.outPorts, true
	case <-time.After(timeout):
		return nil, nil, false
	}
}

func (dm *DeviceManager) scan() {
	inPorts, outPorts, ok := listPorts(3 * time.Second)
	if !ok {
		// CoreMIDI is hung - skip this scan
		debug.Log("devices", "port scan timed out")
		return
	}

	seenIDs := make(map[string]bool)

	var names []string
	for _, p := range inPorts {
		names = append(names, p.String())
	}
	keyboard, hasKeyboard := PickKeyboard(names, dm.Keyboard)

	for i, inPort := range inPorts {
		id := inPort.String()
		launchpad := IsLaunchpad(id)
		switch {
		case launchpad && dm.Launchpad:
		case hasKeyboard && id == keyboard:
		default:
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		var ctrl Controller
		var err error
		if launchpad {
			ctrl, err = NewLaunchpadController(id, inPorts[i], matchingOut(id, outPorts))
		} else {
			ctrl, err = NewKeyboardController(id, inPorts[i])
		}
		if err != nil {
			debug.Log("devices", "connect %s failed: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = ctrl
		dm.mu.Unlock()

		debug.Log("devices", "connected %s (%s)", id, ctrl.Type())
		dm.events <- DeviceEvent{
			Type:       DeviceConnected,
			Controller: ctrl,
			ID:         id,
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		debug.Log("devices", "disconnected %s", id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

func matchingOut(name string, outPorts []drivers.Out) drivers.Out {
	for _, op := range outPorts {
		if strings.EqualFold(op.String(), name) {
			return op
		}
	}
	return nil
}

// IsLaunchpad reports whether a port name belongs to a Launchpad
func IsLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}

// IsExcluded reports whether a port is a virtual/system port
func IsExcluded(name string) bool {
	for _, pat := range ExcludedPatterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

// PickKeyboard chooses the keyboard among input port names. With a preferred
// name only a port containing it qualifies.
func PickKeyboard(names []string, preferred string) (string, bool) {
	for _, name := range names {
		if IsLaunchpad(name) || IsExcluded(name) {
			continue
		}
		if preferred == "" || containsCI(name, preferred) {
			return name, true
		}
	}
	return "", false
}

func containsCI(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

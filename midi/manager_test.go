package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestPortClassification(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsLaunchpad("Launchpad X LPX MIDI"))
	assert.False(IsLaunchpad("Launchpad X LPX DAW"))
	assert.True(IsExcluded("Midi Through:Midi Through Port-0 14:0"))
	assert.False(IsExcluded("Keystation 49"))
}

func TestPickKeyboard(t *testing.T) {
	ports := []string{"Midi Through Port-0", "Launchpad X LPX MIDI", "Keystation 49", "Digital Piano"}

	name, ok := PickKeyboard(ports, "")
	assert.True(t, ok)
	assert.Equal(t, "Keystation 49", name)

	name, ok = PickKeyboard(ports, "piano")
	assert.True(t, ok)
	assert.Equal(t, "Digital Piano", name)

	_, ok = PickKeyboard(ports, "organ")
	assert.False(t, ok)

	_, ok = PickKeyboard(ports[:2], "")
	assert.False(t, ok)
}

func TestPortSend(t *testing.T) {
	var sent []gomidi.Message
	p := NewPort("test", func(msg gomidi.Message) error {
		sent = append(sent, msg)
		return nil
	})

	err := p.Send([]Event{
		{Type: NoteOn, Note: 60, Velocity: 127},
		{Type: NoteOff, Note: 60},
	})
	assert.NoError(t, err)
	assert.Equal(t, []gomidi.Message{gomidi.NoteOn(0, 60, 127), gomidi.NoteOff(0, 60)}, sent)

	failing := NewPort("broken", func(gomidi.Message) error { return errors.New("gone") })
	assert.ErrorContains(t, failing.Send([]Event{{Type: NoteOn}}), "broken")

	var none *Port
	assert.NoError(t, none.Send([]Event{{Type: NoteOn}}))
	assert.Equal(t, "", none.Name())
}

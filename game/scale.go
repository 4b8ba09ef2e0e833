package game

// Scale is the set of eligible pitch classes, indexed C=0 .. B=11
type Scale [12]bool

// NoteNames are the pitch class labels
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteSymbols are NoteNames without the sharp sign, usable in identifiers
var NoteSymbols = [12]string{"C", "Cs", "D", "Ds", "E", "F", "Fs", "G", "Gs", "A", "As", "B"}

// FullScale has every pitch class enabled
func FullScale() Scale {
	var s Scale
	for i := range s {
		s[i] = true
	}
	return s
}

// PitchClass returns the pitch class of a MIDI note, never negative
func PitchClass(note int) int {
	pc := note % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// Contains reports whether the note's pitch class is enabled
func (s Scale) Contains(note int) bool {
	return s[PitchClass(note)]
}

// Any reports whether at least one pitch class is enabled
func (s Scale) Any() bool {
	for _, on := range s {
		if on {
			return true
		}
	}
	return false
}

// Count returns the number of enabled pitch classes
func (s Scale) Count() int {
	n := 0
	for _, on := range s {
		if on {
			n++
		}
	}
	return n
}

// NoteName returns a note label such as "C4" (MIDI 60 = C4)
func NoteName(note int) string {
	if note < 0 || note > 127 {
		return "-"
	}
	return NoteNames[note%12] + octaveNames[note/12]
}

var octaveNames = [11]string{"-1", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

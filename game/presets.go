package game

// Preset is a named configuration. Negative fields are wildcards that leave
// the current value untouched and match anything.
type Preset struct {
	Name    string
	Root    int
	NbNotes int
	Scale   [12]int
}

// Presets are the built-in configurations. Custom matches anything and must
// stay last.
var Presets = []Preset{
	{"One Octave", 60, 12, [12]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	{"D major", 60, 12, [12]int{1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 0, 1}},
	{"F# Maj pentatonic", 60, 12, [12]int{0, 1, 0, 1, 0, 0, 1, 0, 1, 0, 1, 0}},
	{"25 keys", 60 - 12, 25, [12]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	{"49 keys", 60 - 24, 49, [12]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	{"61 keys", 60 - 24, 61, [12]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	{"88 keys", 60 - 39, 88, [12]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	{"Custom", -1, -1, [12]int{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}},
}

// Matches reports whether c agrees with every non-wildcard field
func (p Preset) Matches(c Config) bool {
	if p.Root >= 0 && p.Root != c.Root {
		return false
	}
	if p.NbNotes >= 0 && p.NbNotes != c.NbNotes {
		return false
	}
	for i, v := range p.Scale {
		if v >= 0 && (v == 1) != c.Scale[i] {
			return false
		}
	}
	return true
}

// Apply writes the non-wildcard fields into c
func (p Preset) Apply(c Config) Config {
	if p.Root >= 0 {
		c.Root = p.Root
	}
	if p.NbNotes >= 0 {
		c.NbNotes = p.NbNotes
	}
	for i, v := range p.Scale {
		if v >= 0 {
			c.Scale[i] = v == 1
		}
	}
	return c
}

// PresetIndex returns the first preset matching c, or -1
func PresetIndex(c Config) int {
	for i, p := range Presets {
		if p.Matches(c) {
			return i
		}
	}
	return -1
}

// PresetByName returns the index of the named preset, or -1
func PresetByName(name string) int {
	for i, p := range Presets {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// NextPreset returns the preset after the one matching c. Presets that would
// leave c unchanged are skipped so cycling always moves.
func NextPreset(c Config) int {
	cur := PresetIndex(c)
	for step := 1; step <= len(Presets); step++ {
		i := (cur + step) % len(Presets)
		if i < 0 {
			i += len(Presets)
		}
		if PresetIndex(Presets[i].Apply(c)) != cur || cur < 0 {
			return i
		}
	}
	return cur
}

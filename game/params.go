package game

import "simon-piano/util"

// ParamID is the host-visible index of a parameter
type ParamID uint32

// Inputs come first, outputs follow. Scale ids must stay consecutive.
const (
	ParamStart ParamID = iota
	ParamRoot
	ParamNbNotes
	ParamScaleC
	ParamScaleCs
	ParamScaleD
	ParamScaleDs
	ParamScaleE
	ParamScaleF
	ParamScaleFs
	ParamScaleG
	ParamScaleGs
	ParamScaleA
	ParamScaleAs
	ParamScaleB
	ParamShallNotPass
	ParamRoundsForMiss

	ParamEffectiveRoot
	ParamEffectiveNbNotes
	ParamStatus
	ParamCurNote
	ParamRound
	ParamStep
	ParamEffectiveScaleC
	ParamEffectiveScaleCs
	ParamEffectiveScaleD
	ParamEffectiveScaleDs
	ParamEffectiveScaleE
	ParamEffectiveScaleF
	ParamEffectiveScaleFs
	ParamEffectiveScaleG
	ParamEffectiveScaleGs
	ParamEffectiveScaleA
	ParamEffectiveScaleAs
	ParamEffectiveScaleB
	ParamNbMiss
	ParamMaxMiss
	ParamMaxRound

	ParamCount
)

// Range is the default and bounds of a parameter
type Range struct {
	Def, Min, Max float32
}

// Param describes a parameter for the host
type Param struct {
	Name      string
	ShortName string
	Symbol    string
	Unit      string
	Range     Range
	Integer   bool
	Boolean   bool

	input  *inputAccess
	output func(Telemetry) float32
}

// IsOutput reports whether the parameter is telemetry written by the game
func (p Param) IsOutput() bool { return p.output != nil }

// Clamp brings v into range, rounding integer and boolean parameters
func (p Param) Clamp(v float32) float32 {
	v = util.Clamp(v, p.Range.Min, p.Range.Max)
	switch {
	case p.Boolean:
		return util.Float(util.Bool(v))
	case p.Integer:
		return float32(util.Round(v))
	}
	return v
}

// inputs are read from and written to the game's configuration
type inputAccess struct {
	get func(*Game) float32
	set func(*Game, float32)
}

var params [ParamCount]Param

func init() {
	params[ParamStart] = Param{
		Name: "Start new round", ShortName: "start", Symbol: "start",
		Range: Range{0, 0, 1}, Boolean: true,
		input: &inputAccess{
			get: func(g *Game) float32 { return util.Float(g.start) },
			set: func(g *Game, v float32) { g.SetStart(util.Bool(v)) },
		},
	}
	params[ParamRoot] = Param{
		Name: "Output root note", ShortName: "root", Symbol: "rootnote",
		Range: Range{60, 0, MaxNote}, Integer: true,
		input: &inputAccess{
			get: func(g *Game) float32 { return float32(g.cfg.Root) },
			set: func(g *Game, v float32) { g.cfg.Root = util.Round(v) },
		},
	}
	params[ParamNbNotes] = Param{
		Name: "Number of notes", ShortName: "nb notes", Symbol: "nbnotes", Unit: "notes",
		Range: Range{12, 1, MaxNote + 1}, Integer: true,
		input: &inputAccess{
			get: func(g *Game) float32 { return float32(g.cfg.NbNotes) },
			set: func(g *Game, v float32) { g.cfg.NbNotes = util.Round(v) },
		},
	}
	for i := 0; i < 12; i++ {
		pc := i
		params[ParamScaleC+ParamID(i)] = Param{
			Name: "Scale " + NoteNames[i], ShortName: NoteNames[i], Symbol: "scale" + NoteSymbols[i],
			Range: Range{1, 0, 1}, Boolean: true,
			input: &inputAccess{
				get: func(g *Game) float32 { return util.Float(g.cfg.Scale[pc]) },
				set: func(g *Game, v float32) { g.cfg.Scale[pc] = util.Bool(v) },
			},
		}
		params[ParamEffectiveScaleC+ParamID(i)] = Param{
			Name: "Effective scale " + NoteNames[i], ShortName: "eff " + NoteNames[i], Symbol: "effectivescale" + NoteSymbols[i],
			Range: Range{1, 0, 1}, Boolean: true,
			output: func(t Telemetry) float32 { return util.Float(t.EffectiveScale[pc]) },
		}
	}
	params[ParamShallNotPass] = Param{
		Name: "Ignore notes out of scale", ShortName: "no pass", Symbol: "shallnotpass",
		Range: Range{0, 0, 1}, Boolean: true,
		input: &inputAccess{
			get: func(g *Game) float32 { return util.Float(g.cfg.ShallNotPass) },
			set: func(g *Game, v float32) { g.cfg.ShallNotPass = util.Bool(v) },
		},
	}
	params[ParamRoundsForMiss] = Param{
		Name: "Rounds for extra miss", ShortName: "rfm", Symbol: "roundsformiss", Unit: "rounds",
		Range: Range{1, 0, MaxRound}, Integer: true,
		input: &inputAccess{
			get: func(g *Game) float32 { return float32(g.cfg.RoundsForMiss) },
			set: func(g *Game, v float32) { g.cfg.RoundsForMiss = util.Round(v) },
		},
	}

	params[ParamEffectiveRoot] = Param{
		Name: "Effective root", ShortName: "eff root", Symbol: "effectiveroot",
		Range: Range{60, 0, MaxNote}, Integer: true,
		output: func(t Telemetry) float32 { return float32(t.EffectiveRoot) },
	}
	params[ParamEffectiveNbNotes] = Param{
		Name: "Effective number of notes", ShortName: "eff nbnotes", Symbol: "effectivenbnotes", Unit: "notes",
		Range: Range{12, 1, MaxNote + 1}, Integer: true,
		output: func(t Telemetry) float32 { return float32(t.EffectiveNbNotes) },
	}
	params[ParamStatus] = Param{
		Name: "Status", ShortName: "stat", Symbol: "status",
		Range: Range{float32(Waiting), 0, float32(StatusCount)}, Integer: true,
		output: func(t Telemetry) float32 { return float32(t.Status) },
	}
	params[ParamCurNote] = Param{
		Name: "Current active note", ShortName: "note", Symbol: "curnote",
		Range: Range{NoNote, NoNote, MaxNote}, Integer: true,
		output: func(t Telemetry) float32 { return float32(t.CurNote) },
	}
	params[ParamRound] = Param{
		Name: "Round number", ShortName: "round", Symbol: "round",
		Range: Range{0, 0, MaxRound}, Integer: true,
		output: func(t Telemetry) float32 { return float32(t.Round) },
	}
	params[ParamStep] = Param{
		Name: "Step number", ShortName: "step", Symbol: "step",
		Range: Range{0, 0, MaxRound}, Integer: true,
		output: func(t Telemetry) float32 { return float32(t.Step) },
	}
	params[ParamNbMiss] = Param{
		Name: "Current number of misses", ShortName: "miss", Symbol: "nbmiss",
		Range: Range{0, 0, MaxRound}, Integer: true,
		output: func(t Telemetry) float32 { return float32(t.NbMiss) },
	}
	params[ParamMaxMiss] = Param{
		Name: "Misses allowed", ShortName: "max miss", Symbol: "maxmiss",
		Range: Range{0, 0, MaxRound}, Integer: true,
		output: func(t Telemetry) float32 { return float32(t.MaxMiss) },
	}
	params[ParamMaxRound] = Param{
		Name: "Best round", ShortName: "best", Symbol: "maxround",
		Range: Range{0, 0, MaxRound}, Integer: true,
		output: func(t Telemetry) float32 { return float32(t.MaxRound) },
	}
}

// Describe returns the description of a parameter
func Describe(id ParamID) (Param, bool) {
	if id >= ParamCount {
		return Param{}, false
	}
	return params[id], true
}

// ParamBySymbol looks a parameter up by its symbol
func ParamBySymbol(symbol string) (ParamID, bool) {
	for i := range params {
		if params[i].Symbol == symbol {
			return ParamID(i), true
		}
	}
	return 0, false
}

// Parameter returns the current value of any parameter
func (g *Game) Parameter(id ParamID) float32 {
	if id >= ParamCount {
		return 0
	}
	p := &params[id]
	if p.output != nil {
		return p.output(g.Telemetry())
	}
	return p.input.get(g)
}

// SetParameter writes an input parameter. Outputs and unknown ids are
// refused.
func (g *Game) SetParameter(id ParamID, v float32) bool {
	if id >= ParamCount {
		return false
	}
	p := &params[id]
	if p.input == nil {
		return false
	}
	p.input.set(g, p.Clamp(v))
	return true
}

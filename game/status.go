package game

// Status is the phase of a game session
type Status int

const (
	Waiting Status = iota
	Starting
	Instructions
	PlayingWait // waiting for the player
	PlayingCorrect
	PlayingIncorrect
	FeedbackIncorrect // miss budget exceeded, holding the cue before game over
	GameOver

	StatusCount
)

var statusNames = [StatusCount]string{
	"Waiting",
	"Starting",
	"Instructions",
	"Your turn",
	"Correct",
	"Incorrect",
	"Missed",
	"Game over",
}

// String returns a short human readable label
func (s Status) String() string {
	if s < 0 || s >= StatusCount {
		return "Unknown"
	}
	return statusNames[s]
}

// IsRunning is true while a game is in progress
func (s Status) IsRunning() bool {
	switch s {
	case Waiting, GameOver:
		return false
	default:
		return true
	}
}

// IsPlaying is true during the player's turn
func (s Status) IsPlaying() bool {
	switch s {
	case PlayingWait, PlayingCorrect, PlayingIncorrect:
		return true
	default:
		return false
	}
}

// IsIdle is the complement of IsRunning
func (s Status) IsIdle() bool {
	return !s.IsRunning()
}

// Ending tells why a game reached GameOver
type Ending int

const (
	EndNone     Ending = iota
	EndLost            // miss budget exceeded
	EndStopped         // aborted by a stop request
	EndMaxRound        // sequence reached MaxRound
)

func (e Ending) String() string {
	switch e {
	case EndLost:
		return "lost"
	case EndStopped:
		return "stopped"
	case EndMaxRound:
		return "max round"
	}
	return "none"
}

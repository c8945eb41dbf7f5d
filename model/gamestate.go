package model

// PlayState follows the referee's coarse game phases.
type PlayState int

const (
	Halt PlayState = iota
	Stop
	Setup   // positioning for a restart
	Ready   // restart may be taken
	Playing // normal play
)

func (s PlayState) String() string {
	switch s {
	case Halt:
		return "halt"
	case Stop:
		return "stop"
	case Setup:
		return "setup"
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// RestartReason is why play was stopped, if a restart is pending.
type RestartReason int

const (
	RestartNone RestartReason = iota
	RestartKickoff
	RestartDirectFree
	RestartIndirectFree
	RestartPenalty
	RestartBallPlacement
)

func (r RestartReason) String() string {
	switch r {
	case RestartNone:
		return "none"
	case RestartKickoff:
		return "kickoff"
	case RestartDirectFree:
		return "direct_free"
	case RestartIndirectFree:
		return "indirect_free"
	case RestartPenalty:
		return "penalty"
	case RestartBallPlacement:
		return "ball_placement"
	default:
		return "unknown"
	}
}

// GameState is the referee view for the current tick. OurRestart says
// whether a pending restart was awarded to the friendly team.
type GameState struct {
	Play       PlayState     `json:"play"`
	Restart    RestartReason `json:"restart"`
	OurRestart bool          `json:"ourRestart"`
}

func (g GameState) IsPlaying() bool { return g.Play == Playing }
func (g GameState) IsReady() bool   { return g.Play == Ready }
func (g GameState) IsStopped() bool { return g.Play == Stop || g.Play == Halt }

func (g GameState) isFreeKick() bool {
	return g.Restart == RestartDirectFree || g.Restart == RestartIndirectFree
}

func (g GameState) IsOurFreeKick() bool   { return g.isFreeKick() && g.OurRestart }
func (g GameState) IsTheirFreeKick() bool { return g.isFreeKick() && !g.OurRestart }

// ParsePlayState maps a referee state name back to its PlayState.
func ParsePlayState(name string) (PlayState, bool) {
	for s := Halt; s <= Playing; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return Halt, false
}

// ParseRestartReason maps a restart name back to its RestartReason.
func ParseRestartReason(name string) (RestartReason, bool) {
	for r := RestartNone; r <= RestartBallPlacement; r++ {
		if r.String() == name {
			return r, true
		}
	}
	return RestartNone, false
}

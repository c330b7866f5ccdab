package core

// Action represents a semantic player intent, abstracted from physical keys.
// The four lane actions carry the lane number so the play screen can forward
// them to the engine without a lookup table.
type Action int

const (
	ActionNone    Action = iota
	ActionLane0          // A - leftmost lane
	ActionLane1          // S
	ActionLane2          // K
	ActionLane3          // L - rightmost lane
	ActionRestart        // R - restart the song
	ActionQuit           // Q - leave the song
	ActionPause          // P, Escape - pause/unpause
)

// LaneActions lists the lane actions in lane order.
var LaneActions = [4]Action{ActionLane0, ActionLane1, ActionLane2, ActionLane3}

// LaneAction returns the action for lane, or ActionNone if out of range.
func LaneAction(lane int) Action {
	if lane < 0 || lane >= len(LaneActions) {
		return ActionNone
	}
	return LaneActions[lane]
}

// Lane returns the lane a lane action refers to.
func (a Action) Lane() (int, bool) {
	if a >= ActionLane0 && a <= ActionLane3 {
		return int(a - ActionLane0), true
	}
	return -1, false
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLane0:
		return "Lane0"
	case ActionLane1:
		return "Lane1"
	case ActionLane2:
		return "Lane2"
	case ActionLane3:
		return "Lane3"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

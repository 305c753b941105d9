package snake

import "math"

// ActionKind classifies an input after routing.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionTurn
	ActionToggle
	ActionReset
	ActionRestart
)

// Action is a routed input. Direction is set only for ActionTurn.
type Action struct {
	Kind      ActionKind
	Direction Direction
}

func turn(d Direction) Action {
	return Action{Kind: ActionTurn, Direction: d}
}

// KeyAction maps a key name to an action. Browser names (ArrowUp, " "), terminal
// names (up, space) and WASD/vim letters are accepted; anything else is ActionNone.
func KeyAction(key string) Action {
	switch key {
	case "ArrowUp", "up", "w", "k":
		return turn(Up)
	case "ArrowDown", "down", "s", "j":
		return turn(Down)
	case "ArrowLeft", "left", "a", "h":
		return turn(Left)
	case "ArrowRight", "right", "d", "l":
		return turn(Right)
	case " ", "space", "Spacebar":
		return Action{Kind: ActionToggle}
	case "r", "R":
		return Action{Kind: ActionReset}
	}
	return Action{}
}

// ButtonAction maps an on-screen button id to an action.
func ButtonAction(id string) Action {
	switch id {
	case "up-btn":
		return turn(Up)
	case "down-btn":
		return turn(Down)
	case "left-btn":
		return turn(Left)
	case "right-btn":
		return turn(Right)
	case "start-btn":
		return Action{Kind: ActionToggle}
	case "reset-btn":
		return Action{Kind: ActionReset}
	case "restart-btn":
		return Action{Kind: ActionRestart}
	}
	return Action{}
}

// SwipeDirection maps a touch movement vector to a direction. The dominant axis wins;
// a tie goes to the vertical axis. A zero or non-finite vector has no direction.
func SwipeDirection(dx, dy float64) (Direction, bool) {
	if !finite(dx) || !finite(dy) || (dx == 0 && dy == 0) {
		return 0, false
	}
	if abs(dx) > abs(dy) {
		if dx > 0 {
			return Right, true
		}
		return Left, true
	}
	if dy > 0 {
		return Down, true
	}
	return Up, true
}

// SwipeAction wraps SwipeDirection as an Action.
func SwipeAction(dx, dy float64) Action {
	d, ok := SwipeDirection(dx, dy)
	if !ok {
		return Action{}
	}
	return turn(d)
}

// Dispatch applies a routed action to c and reports whether it did anything.
func Dispatch(c *Controller, a Action) bool {
	switch a.Kind {
	case ActionTurn:
		return c.OnDirectionRequest(a.Direction)
	case ActionToggle:
		c.OnToggle()
	case ActionReset:
		c.OnReset()
	case ActionRestart:
		c.OnRestart()
	default:
		return false
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

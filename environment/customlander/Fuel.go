package customlander

// Rewards given by the fuel usage rule
const (
	ThrustReward      float64 = 1.0
	EmptyThrustReward float64 = -1.0
	NoOpReward        float64 = 0.0
)

// ReasonOutOfFuel is the info reason given when an episode terminates
// due to fuel exhaustion
const ReasonOutOfFuel = "out_of_fuel"

// burn applies the fuel usage rule to an action taken with some amount
// of fuel remaining. It returns the fuel remaining after the action,
// the reward for the action, and whether the episode has terminated.
//
// Any non-zero action fires a thruster. Firing a thruster with fuel
// remaining burns one unit of fuel. Firing a thruster with an empty
// tank is penalized and leaves the fuel at zero.
func burn(action Action, fuel int) (remaining int, reward float64,
	terminated bool) {
	remaining = fuel
	switch {
	case action != NoOp && fuel > 0:
		remaining--
		reward = ThrustReward

	case action != NoOp:
		reward = EmptyThrustReward

	default:
		reward = NoOpReward
	}

	return remaining, reward, remaining <= 0
}

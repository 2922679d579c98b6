package wheel

import "fmt"

// Phase is the stage of a spin cycle.
//
// The phase follows this state machine:
//
//	        Play()              speed reached
//	Idle ──────────► Accelerating ──────────► Constant
//	 ▲                                            │
//	 │   duration elapsed                Stop()   │
//	 └──────────────────── Decelerating ◄─────────┘
//
// A Stop during Accelerating is held until the ramp reaches Constant.
type Phase int

const (
	// PhaseIdle means the wheel is at rest.
	PhaseIdle Phase = iota
	// PhaseAccelerating means the wheel is ramping up to cruising speed.
	PhaseAccelerating
	// PhaseConstant means the wheel is turning at cruising speed.
	PhaseConstant
	// PhaseDecelerating means the wheel is settling onto the prize.
	PhaseDecelerating
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAccelerating:
		return "accelerating"
	case PhaseConstant:
		return "constant"
	case PhaseDecelerating:
		return "decelerating"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

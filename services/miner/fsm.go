package miner

import (
	"github.com/looplab/fsm"
)

// Round states and events
const (
	StateIdle          = "idle"
	StateContextIssued = "context_issued"
	StateResolved      = "resolved"

	EventIssue   = "issue"
	EventResolve = "resolve"
	EventAbandon = "abandon"
)

// newRoundStateMachine creates the state machine tracking the rounds of one
// algorithm. The machine has the following states:
// - idle: no round open, either none was issued or the last one was abandoned
// - context_issued: a round is open and its context is handed out
// - resolved: the last round was solved
// The machine has the following events:
// - issue: a new round opens
// - resolve: an accepted solution closes the round
// - abandon: the round closes without a solution
func newRoundStateMachine() *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{
				Name: EventIssue,
				Src: []string{
					StateIdle,
					StateResolved,
				},
				Dst: StateContextIssued,
			},
			{
				Name: EventResolve,
				Src: []string{
					StateContextIssued,
				},
				Dst: StateResolved,
			},
			{
				Name: EventAbandon,
				Src: []string{
					StateContextIssued,
				},
				Dst: StateIdle,
			},
		},
		fsm.Callbacks{},
	)
}

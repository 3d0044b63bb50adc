package models

import (
	"errors"
	"fmt"
)

// WorkflowState is where a page sits in the publishing workflow
type WorkflowState string

const (
	StateDraft    WorkflowState = "draft"
	StatePending  WorkflowState = "pending"
	StateLive     WorkflowState = "live"
	StateArchived WorkflowState = "archived"
)

// WorkflowAction moves a page between workflow states
type WorkflowAction string

const (
	ActionSubmit    WorkflowAction = "submit"
	ActionApprove   WorkflowAction = "approve"
	ActionReject    WorkflowAction = "reject"
	ActionPublish   WorkflowAction = "publish"
	ActionUnpublish WorkflowAction = "unpublish"
	ActionArchive   WorkflowAction = "archive"
	ActionRestore   WorkflowAction = "restore"
)

var ErrIllegalTransition = errors.New("illegal workflow transition")

// AllWorkflowActions in the order they are offered to the user
var AllWorkflowActions = []WorkflowAction{
	ActionSubmit,
	ActionApprove,
	ActionReject,
	ActionPublish,
	ActionUnpublish,
	ActionArchive,
	ActionRestore,
}

var transitions = map[WorkflowState]map[WorkflowAction]WorkflowState{
	StateDraft: {
		ActionSubmit:  StatePending,
		ActionPublish: StateLive,
		ActionArchive: StateArchived,
	},
	StatePending: {
		ActionApprove: StateLive,
		ActionPublish: StateLive,
		ActionReject:  StateDraft,
		ActionArchive: StateArchived,
	},
	StateLive: {
		ActionUnpublish: StateDraft,
		ActionArchive:   StateArchived,
	},
	StateArchived: {
		ActionRestore: StateDraft,
	},
}

// NextState returns the state reached by applying action to state.
// An empty state is treated as draft.
func NextState(state WorkflowState, action WorkflowAction) (WorkflowState, error) {
	if state == "" {
		state = StateDraft
	}
	next, ok := transitions[state][action]
	if !ok {
		return state, fmt.Errorf("%w: cannot %s a %s page", ErrIllegalTransition, action, state)
	}
	return next, nil
}

// ParseWorkflowAction validates a user-supplied action name
func ParseWorkflowAction(s string) (WorkflowAction, error) {
	for _, a := range AllWorkflowActions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown workflow action: %s", s)
}

// Check applies the configured policy on top of the transition table
func (w WorkflowSettings) Check(state WorkflowState, action WorkflowAction) (WorkflowState, error) {
	next, err := NextState(state, action)
	if err != nil {
		return state, err
	}
	if w.RequireApproval && action == ActionPublish && (state == StateDraft || state == "") {
		return state, fmt.Errorf("%w: draft pages must be submitted for approval first", ErrIllegalTransition)
	}
	return next, nil
}

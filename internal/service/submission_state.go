package service

import "fmt"

// SubmissionState is the explicit per-attempt workflow state. An attempt only
// ever moves through these in order, with the upload and duplicate stages
// optional depending on input and policy.
type SubmissionState string

const (
	StateIdle              SubmissionState = "idle"
	StateValidating        SubmissionState = "validating"
	StateUploadingImage    SubmissionState = "uploading_image"
	StateCheckingDuplicate SubmissionState = "checking_duplicate"
	StateCreatingRecord    SubmissionState = "creating_record"
	StateSucceeded         SubmissionState = "succeeded"
	StateFailed            SubmissionState = "failed"
)

var legalTransitions = map[SubmissionState][]SubmissionState{
	StateIdle:              {StateValidating},
	StateValidating:        {StateUploadingImage, StateCheckingDuplicate, StateCreatingRecord, StateFailed},
	StateUploadingImage:    {StateCheckingDuplicate, StateCreatingRecord, StateFailed},
	StateCheckingDuplicate: {StateCreatingRecord, StateFailed},
	StateCreatingRecord:    {StateSucceeded, StateFailed},
}

// SubmissionAttempt tracks one pass through the workflow.
type SubmissionAttempt struct {
	state SubmissionState
}

// NewSubmissionAttempt starts an attempt in the idle state.
func NewSubmissionAttempt() *SubmissionAttempt {
	return &SubmissionAttempt{state: StateIdle}
}

// State returns the current workflow state.
func (a *SubmissionAttempt) State() SubmissionState {
	return a.state
}

// Advance moves the attempt to the next state, rejecting illegal jumps. An
// illegal transition is a programming error, not a user-facing condition.
func (a *SubmissionAttempt) Advance(next SubmissionState) error {
	for _, allowed := range legalTransitions[a.state] {
		if allowed == next {
			a.state = next
			return nil
		}
	}
	return fmt.Errorf("illegal submission transition %s -> %s", a.state, next)
}

// Terminal reports whether the attempt has reached an end state.
func (a *SubmissionAttempt) Terminal() bool {
	return a.state == StateSucceeded || a.state == StateFailed
}

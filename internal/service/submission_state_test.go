package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionAttemptFullPath(t *testing.T) {
	attempt := NewSubmissionAttempt()
	assert.Equal(t, StateIdle, attempt.State())

	for _, next := range []SubmissionState{StateValidating, StateUploadingImage, StateCheckingDuplicate, StateCreatingRecord, StateSucceeded} {
		require.NoError(t, attempt.Advance(next))
		assert.Equal(t, next, attempt.State())
	}
	assert.True(t, attempt.Terminal())
}

func TestSubmissionAttemptSkipsOptionalStages(t *testing.T) {
	attempt := NewSubmissionAttempt()
	require.NoError(t, attempt.Advance(StateValidating))
	require.NoError(t, attempt.Advance(StateCreatingRecord), "upload and duplicate stages are optional")
	require.NoError(t, attempt.Advance(StateSucceeded))
}

func TestSubmissionAttemptRejectsIllegalJumps(t *testing.T) {
	attempt := NewSubmissionAttempt()
	assert.Error(t, attempt.Advance(StateSucceeded), "idle cannot jump to succeeded")
	assert.Error(t, attempt.Advance(StateCreatingRecord), "idle cannot jump to creating")

	require.NoError(t, attempt.Advance(StateValidating))
	require.NoError(t, attempt.Advance(StateFailed))
	assert.True(t, attempt.Terminal())
	assert.Error(t, attempt.Advance(StateValidating), "terminal states allow no transition")
}

func TestSubmissionAttemptCanFailFromAnyActiveStage(t *testing.T) {
	for _, stage := range []SubmissionState{StateValidating, StateUploadingImage, StateCheckingDuplicate, StateCreatingRecord} {
		attempt := &SubmissionAttempt{state: stage}
		require.NoError(t, attempt.Advance(StateFailed), "stage %s", stage)
	}
}

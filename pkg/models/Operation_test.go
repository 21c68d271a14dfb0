package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholderRoundTrip(t *testing.T) {
	value := Placeholder("album:Trip")

	ref, ok := PlaceholderRef(value)
	assert.True(t, ok)
	assert.Equal(t, "album:Trip", ref)

	_, ok = PlaceholderRef("72157600000000000")
	assert.False(t, ok)
}

func TestPlanCountByKind(t *testing.T) {
	plan := Plan{
		Operations: []Operation{
			DeletePhoto("1"),
			DeletePhoto("2"),
			DeleteAlbum("10", "Develops_1"),
		},
	}

	counts := plan.CountByKind()
	assert.Equal(t, 2, counts[OperationDeletePhoto])
	assert.Equal(t, 1, counts[OperationDeleteAlbum])
	assert.False(t, plan.IsEmpty())
}

func TestExecutionReportTally(t *testing.T) {
	report := ExecutionReport{}
	report.Add(OperationResult{Outcome: OutcomeSucceeded, Operation: DeletePhoto("1")})
	report.Add(OperationResult{Outcome: OutcomeAlreadySatisfied, Operation: DeletePhoto("2")})
	report.Add(OperationResult{Outcome: OutcomeFailed, Operation: DeletePhoto("3")})

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.AlreadySatisfied)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []Operation{DeletePhoto("1"), DeletePhoto("2"), DeletePhoto("3")}, report.Operations())
}

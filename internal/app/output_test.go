package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "long yes with spaces", input: "  YES \n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "anything else", input: "sure\n", want: false},
		{name: "no newline", input: "y", want: true},
		{name: "empty input", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			assert.Equal(t, tt.want, Confirm(strings.NewReader(tt.input), out, "Proceed?", false))
			assert.Contains(t, out.String(), "Proceed? (y/n)")
		})
	}
}

func TestConfirmAssumeYesReadsNothing(t *testing.T) {
	in := strings.NewReader("n\n")
	assert.True(t, Confirm(in, &bytes.Buffer{}, "Proceed?", true))
	assert.Equal(t, 3, in.Len())
}

func TestPrintPlan(t *testing.T) {
	out := &bytes.Buffer{}

	PrintPlan(out, models.Plan{
		Intent: "delete-by-prefix",
		Operations: []models.Operation{
			models.DeletePhoto("p1"),
			models.DeleteAlbum("a1", "Develops_1"),
		},
		Skipped:  []models.Skip{{Subject: "Keep", Reason: "not matching"}},
		Warnings: []string{"careful"},
	})

	text := out.String()
	assert.Contains(t, text, "Plan delete-by-prefix: 2 operation(s)")
	assert.Contains(t, text, "[SKIP] Keep: not matching")
	assert.Contains(t, text, "[WARN] careful")
	assert.Contains(t, text, "delete-album: 1")
	assert.Contains(t, text, "delete-photo: 1")
}

func TestPrintReport(t *testing.T) {
	out := &bytes.Buffer{}
	report := models.ExecutionReport{}
	report.Add(models.OperationResult{Outcome: models.OutcomeSucceeded})
	report.Add(models.OperationResult{Outcome: models.OutcomeAlreadySatisfied})

	PrintReport(out, report)
	assert.Contains(t, out.String(), "1 succeeded, 1 already done, 0 failed")

	out.Reset()
	PrintReport(out, models.ExecutionReport{DryRun: true, Previewed: 4})
	assert.Contains(t, out.String(), "4 operation(s) previewed")
}

func TestPrintDuplicates(t *testing.T) {
	out := &bytes.Buffer{}
	PrintDuplicates(out, []models.Album{{ID: "1", Title: "A", PhotoCount: 3}})
	assert.Equal(t, "Duplicates:\nA,3,1\n", out.String())
}

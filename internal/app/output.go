package app

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/adampresley/flickralbums/pkg/models"
)

/*
Confirm asks the operator to approve a plan and returns true only for an
explicit yes. assumeYes answers for them.
*/
func Confirm(in io.Reader, out io.Writer, prompt string, assumeYes bool) bool {
	if assumeYes {
		fmt.Fprintf(out, "%s (y/n): y\n", prompt)
		return true
	}

	fmt.Fprintf(out, "%s (y/n): ", prompt)

	answer, err := bufio.NewReader(in).ReadString('\n')

	if err != nil && answer == "" {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func PrintPlan(out io.Writer, plan models.Plan) {
	fmt.Fprintf(out, "Plan %s: %d operation(s)\n", plan.Intent, len(plan.Operations))

	for index, op := range plan.Operations {
		fmt.Fprintf(out, "  %4d. %s\n", index+1, op)
	}

	if len(plan.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped:")

		for _, skip := range plan.Skipped {
			fmt.Fprintf(out, "  [SKIP] %s: %s\n", skip.Subject, skip.Reason)
		}
	}

	if len(plan.Warnings) > 0 {
		fmt.Fprintln(out, "Warnings:")

		for _, warning := range plan.Warnings {
			fmt.Fprintf(out, "  [WARN] %s\n", warning)
		}
	}

	counts := plan.CountByKind()
	kinds := make([]string, 0, len(counts))

	for kind := range counts {
		kinds = append(kinds, string(kind))
	}

	slices.Sort(kinds)

	for _, kind := range kinds {
		fmt.Fprintf(out, "  %s: %d\n", kind, counts[models.OperationKind(kind)])
	}
}

func PrintReport(out io.Writer, report models.ExecutionReport) {
	if report.DryRun {
		fmt.Fprintf(out, "Dry run: %d operation(s) previewed, nothing was changed\n", report.Previewed)
		return
	}

	fmt.Fprintf(out, "Done: %d succeeded, %d already done, %d failed\n", report.Succeeded, report.AlreadySatisfied, report.Failed)

	for _, result := range report.Results {
		if result.Outcome == models.OutcomeFailed {
			fmt.Fprintf(out, "  [ERROR] %s: %v\n", result.Resolved, result.Err)
		}
	}
}

// PrintDuplicates writes one "title,photo count,id" line per album.
func PrintDuplicates(out io.Writer, albums []models.Album) {
	fmt.Fprintln(out, "Duplicates:")

	for _, album := range albums {
		fmt.Fprintf(out, "%s,%d,%s\n", album.Title, album.PhotoCount, album.ID)
	}
}

func PrintTitles(out io.Writer, heading string, albums []models.Album) {
	fmt.Fprintln(out, heading)

	for _, album := range albums {
		fmt.Fprintf(out, " - %s\n", album.Title)
	}
}

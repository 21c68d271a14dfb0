package models

type Outcome string

const (
	OutcomeSucceeded        Outcome = "succeeded"
	OutcomeAlreadySatisfied Outcome = "already-satisfied"
	OutcomeFailed           Outcome = "failed"
	OutcomeDryRun           Outcome = "dry-run"
)

/*
OperationResult records what happened to one planned operation. Operation is
exactly as planned, Resolved has placeholders replaced with real ids.
*/
type OperationResult struct {
	Index      int
	Operation  Operation
	Resolved   Operation
	Outcome    Outcome
	ProducedID string
	Attempts   int
	Err        error
}

type ExecutionReport struct {
	DryRun           bool
	Results          []OperationResult
	Succeeded        int
	AlreadySatisfied int
	Failed           int
	Previewed        int
}

func (r *ExecutionReport) Add(result OperationResult) {
	r.Results = append(r.Results, result)

	switch result.Outcome {
	case OutcomeSucceeded:
		r.Succeeded++
	case OutcomeAlreadySatisfied:
		r.AlreadySatisfied++
	case OutcomeFailed:
		r.Failed++
	case OutcomeDryRun:
		r.Previewed++
	}
}

// Operations returns the planned operations in the order they were handled.
func (r ExecutionReport) Operations() []Operation {
	result := make([]Operation, 0, len(r.Results))

	for _, res := range r.Results {
		result = append(result, res.Operation)
	}

	return result
}

package models

/*
Plan is the ordered list of operations derived from a snapshot and an
intent. Skipped collects subjects the planner looked at and deliberately
left out, Warnings collects anything an operator should read before
confirming.
*/
type Plan struct {
	Intent     string
	Operations []Operation
	Skipped    []Skip
	Warnings   []string
}

type Skip struct {
	Subject string
	Reason  string
}

func (p Plan) IsEmpty() bool {
	return len(p.Operations) == 0
}

// CountByKind tallies the plan's operations per kind.
func (p Plan) CountByKind() map[OperationKind]int {
	result := map[OperationKind]int{}

	for _, op := range p.Operations {
		result[op.Kind]++
	}

	return result
}

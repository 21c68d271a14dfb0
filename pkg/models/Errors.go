package models

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	// KindOperation is a single operation that cannot complete. It is the
	// kind assumed for any error that carries no kind of its own.
	KindOperation ErrorKind = iota
	KindSetup
	KindTransient
	KindAlreadySatisfied
	KindPlanIntegrity
)

var (
	ErrUnresolvedReference = fmt.Errorf("unresolved reference")
	ErrMissingPrimaryPhoto = fmt.Errorf("album has no photos to use as primary photo")
)

func (k ErrorKind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindTransient:
		return "transient"
	case KindAlreadySatisfied:
		return "already-satisfied"
	case KindPlanIntegrity:
		return "plan-integrity"
	}

	return "operation"
}

/*
ServiceError carries a classified failure. Op names what was being done
(an API method, a file, a plan step). Code is the service's own error code
when there is one.
*/
type ServiceError struct {
	Kind ErrorKind
	Op   string
	Code int
	Err  error
}

func NewServiceError(kind ErrorKind, op string, err error) *ServiceError {
	return &ServiceError{Kind: kind, Op: op, Err: err}
}

func (e *ServiceError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %s (code %d): %v", e.Op, e.Kind, e.Code, e.Err)
	}

	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost ServiceError in err's chain.
func KindOf(err error) ErrorKind {
	var serviceErr *ServiceError

	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}

	return KindOperation
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

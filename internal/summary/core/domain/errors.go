package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrSchemaMismatch   = errors.New("schema mismatch")
	ErrOutOfDomainEvent = errors.New("out of domain event")
)

// OutOfDomainError describes one event whose timestamp falls outside [0, LastEdge).
type OutOfDomainError struct {
	DatasetID string
	Condition string
	Timestamp float64
	NeuronID  int64
	LastEdge  int64
}

func (e *OutOfDomainError) Error() string {
	return fmt.Sprintf("%s: dataset %q neuron %d timestamp %g outside [0, %d)",
		ErrOutOfDomainEvent, e.DatasetID, e.NeuronID, e.Timestamp, e.LastEdge)
}

func (e *OutOfDomainError) Unwrap() error {
	return ErrOutOfDomainEvent
}

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func schemaMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, fmt.Sprintf(format, args...))
}

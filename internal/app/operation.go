package app

import (
	"time"
)

// Operation identifies one CLI invocation in the log. Its ID is the start
// time and tags every log line written during the run.
type Operation struct {
	ID      string
	Name    string
	Started time.Time
	Status  string // "success" or "error"
	Err     error
}

// NewOperation starts an operation at the given time.
func NewOperation(name string, started time.Time) *Operation {
	return &Operation{
		ID:      started.UTC().Format("20060102T150405Z"),
		Name:    name,
		Started: started,
		Status:  "success",
	}
}

// Fail records err as the outcome. The first failure wins; nil is ignored.
func (op *Operation) Fail(err error) {
	if err == nil || op.Err != nil {
		return
	}
	op.Status = "error"
	op.Err = err
}

// Failed reports whether the operation recorded an error.
func (op *Operation) Failed() bool {
	return op.Err != nil
}

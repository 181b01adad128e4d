package filter

import (
	"errors"
	"fmt"
)

// ErrEmptyExpression is returned when compiling a blank expression
var ErrEmptyExpression = errors.New("filter: empty expression")

// CompilationError wraps an expr parse or type-check failure
type CompilationError struct {
	Expression string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("filter %q does not compile: %v", e.Expression, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// EvaluationError wraps a runtime failure of a compiled filter against one
// catalog movie
type EvaluationError struct {
	Expression string
	MovieID    int64
	Title      string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("filter %q failed on movie %d (%s): %v", e.Expression, e.MovieID, e.Title, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

package domain

import (
	"errors"
	"fmt"
)

// Stage names the part of a run that failed.
type Stage string

// Failure stages. Every error leaving the orchestrator or the workflow is a
// *StageError tagged with one of them.
const (
	StageConfig    Stage = "config"
	StageLoad      Stage = "load"
	StageRule      Stage = "rule"
	StageSerialize Stage = "serialize"
	StageStructure Stage = "structure"
)

// Sentinel errors matched by errors.Is against a *StageError.
var (
	ErrConfig    = errors.New("configuration error")
	ErrLoad      = errors.New("load error")
	ErrRule      = errors.New("rule error")
	ErrSerialize = errors.New("serialization error")
	ErrStructure = errors.New("structural error")
)

var stageSentinels = map[Stage]error{
	StageConfig:    ErrConfig,
	StageLoad:      ErrLoad,
	StageRule:      ErrRule,
	StageSerialize: ErrSerialize,
	StageStructure: ErrStructure,
}

// StageError wraps a failure with the stage it happened in and, for rule
// failures, the offending XPath expression.
type StageError struct {
	Stage Stage
	Expr  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Expr != "" {
		return fmt.Sprintf("%s stage failed for xpath %q: %v", e.Stage, e.Expr, e.Err)
	}

	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's stage.
func (e *StageError) Is(target error) bool {
	sentinel, ok := stageSentinels[e.Stage]
	return ok && target == sentinel
}

func stageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}

	var se *StageError
	if errors.As(err, &se) {
		return err
	}

	return &StageError{Stage: stage, Err: err}
}

func ruleErr(expr string, err error) error {
	return &StageError{Stage: StageRule, Expr: expr, Err: err}
}

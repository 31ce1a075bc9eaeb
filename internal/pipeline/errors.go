package pipeline

import "fmt"

// Stage identifies which diagnosis stage produced an error
type Stage string

const (
	StageIdentify  Stage = "visual_identifier"
	StageExplain   Stage = "disease_explainer"
	StageResearch  Stage = "treatment_researcher"
	StageInstruct  Stage = "instruction_generator"
	StageSummarize Stage = "summarizer"
)

// ErrorKind classifies why a stage failed
type ErrorKind string

const (
	KindGateway           ErrorKind = "gateway"
	KindParse             ErrorKind = "parse"
	KindNoTreatment       ErrorKind = "no_treatment"
	KindIncompleteSummary ErrorKind = "incomplete_summary"
	KindCancelled         ErrorKind = "cancelled"
)

// Error wraps a stage failure with enough context to report it. A failed run
// yields exactly one of these, naming the stage where the pipeline stopped.
type Error struct {
	Stage Stage
	Kind  ErrorKind
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func stageErr(stage Stage, kind ErrorKind, err error) *Error {
	return &Error{Stage: stage, Kind: kind, Err: err}
}

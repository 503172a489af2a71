package relay

import "errors"

// Step identifies a stage of the relay pipeline.
type Step string

const (
	StepParse    Step = "parse"
	StepFetch    Step = "fetch"
	StepExtract  Step = "extract"
	StepRelocate Step = "relocate"
	StepRecord   Step = "record"
	StepNotify   Step = "notify"
)

// StepError wraps a failure with the pipeline step it occurred in.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return string(e.Step) + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepErr(step Step, err error) *StepError {
	return &StepError{Step: step, Err: err}
}

// FailedStep returns the pipeline step recorded in err, if any.
func FailedStep(err error) (Step, bool) {
	var stepError *StepError
	if errors.As(err, &stepError) {
		return stepError.Step, true
	}
	return "", false
}

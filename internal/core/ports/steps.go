package ports

import "time"

// StepSink receives the lifecycle of pipeline steps. It decouples telemetry
// collection from presentation, so the same span stream can drive the
// interactive preview's status area or plain progress lines in batch mode.
//
//go:generate mockgen -source=steps.go -destination=mocks/mock_steps.go -package=mocks
type StepSink interface {
	// OnStepStart is called when a pipeline step begins.
	// spanID uniquely identifies this execution of the step.
	OnStepStart(spanID, name string, startTime time.Time)

	// OnStepLog is called when a step emits output, typically an external
	// tool's stderr. data may contain partial lines.
	OnStepLog(spanID string, data []byte)

	// OnStepEnd is called when a step finishes. err is nil on success.
	OnStepEnd(spanID string, endTime time.Time, err error)
}

package service

// Stage is a step of a single answer request.
type Stage string

const (
	StageReady      Stage = "ready"
	StageRetrieving Stage = "retrieving"
	StageGenerating Stage = "generating"
	StageSanitizing Stage = "sanitizing"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

package pipeline

import (
	"errors"
	"strings"

	"github.com/rotisserie/eris"
)

// Stage selects how far a run goes.
type Stage string

const (
	StageAll     Stage = "all"
	StageCollect Stage = "collect"
	StageProcess Stage = "process"
	StageLoad    Stage = "load"
)

// ErrStageUnsupported is returned for stages that would need data from an
// earlier run. Collected data is not persisted between runs.
var ErrStageUnsupported = errors.New("pipeline: stage cannot run on its own")

// ParseStage parses a stage name. The empty string means StageAll.
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return StageAll, nil
	}
	switch st {
	case StageAll, StageCollect, StageProcess, StageLoad:
		return st, nil
	}
	return "", eris.Errorf("pipeline: unknown stage %q (want all, collect, process or load)", s)
}

// Validate reports whether the stage can run.
func (s Stage) Validate() error {
	switch s {
	case StageAll, StageCollect:
		return nil
	case StageProcess, StageLoad:
		return eris.Wrapf(ErrStageUnsupported, "stage %q needs collected data; run with --stage all", s)
	}
	return eris.Errorf("pipeline: unknown stage %q", s)
}

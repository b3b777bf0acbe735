package models

import (
	"errors"
	"fmt"
)

// Stage is the sign-off status of a submitted overtime entry.
type Stage string

const (
	StagePending       Stage = "pending"
	StageApproved      Stage = "approved(production)"
	StageFinalApproved Stage = "final_approved(hr)"
)

var (
	ErrInvalidStage    = errors.New("invalid approval stage")
	ErrStageTransition = errors.New("approval stage change not allowed")
)

func ParseStage(s string) (Stage, error) {
	switch st := Stage(s); st {
	case StagePending, StageApproved, StageFinalApproved:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStage, s)
}

// CanTransition reports whether role may move an entry from one stage to
// another. Production approvers sign off pending entries, HR approvers give
// final approval to production-approved ones, administrators may set any
// stage. Re-setting the current stage is always allowed.
func CanTransition(role Role, from, to Stage) bool {
	if _, err := ParseStage(string(to)); err != nil {
		return false
	}
	if from == to {
		return true
	}
	if role == RoleAdmin {
		return true
	}
	switch {
	case from == StagePending && to == StageApproved:
		return CanAccess(role, CapApproveProduction)
	case from == StageApproved && to == StageFinalApproved:
		return CanAccess(role, CapApproveHR)
	}
	return false
}

// SetStage moves e to stage on behalf of role.
func (e *OvertimeEntry) SetStage(role Role, stage Stage) error {
	if _, err := ParseStage(string(stage)); err != nil {
		return err
	}
	if !CanTransition(role, e.ApprovalStage, stage) {
		return fmt.Errorf("%w: %s cannot move %s to %s", ErrStageTransition, role, e.ApprovalStage, stage)
	}
	e.ApprovalStage = stage
	return nil
}

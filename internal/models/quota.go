package models

import "time"

// TaskKind enumerates the reward-earning task sources. The quota gate is
// kind-agnostic; kinds only select the reward amount.
type TaskKind string

const (
	TaskCaptcha TaskKind = "captcha"
	TaskSurvey  TaskKind = "survey"
	TaskGame    TaskKind = "game"
)

// TaskQuotaState tracks how many rewarded tasks an account has completed
// since the last reset, and when the cooldown window opened.
// Invariant: CooldownStart is non-nil exactly when CompletedCount has
// reached the quota limit since the last reset.
type TaskQuotaState struct {
	CompletedCount int        `db:"completed_count"`
	CooldownStart  *time.Time `db:"cooldown_start"`
}

// InCooldown reports whether the cooldown window is open at the stored
// timestamp, ignoring elapsed time. Callers that need the effective state
// must go through the quota gate, which derives it from now.
func (s TaskQuotaState) InCooldown() bool {
	return s.CooldownStart != nil
}

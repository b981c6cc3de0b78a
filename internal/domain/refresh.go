package domain

import "time"

type SkipReason string

const (
	SkipQuota    SkipReason = "quota"
	SkipCooldown SkipReason = "cooldown"
)

type RefreshState string

const (
	RefreshDone    RefreshState = "refreshed"
	RefreshSkipped RefreshState = "skipped"
	RefreshFailed  RefreshState = "failed"
)

// RefreshOutcome is the result of one refresh attempt. Exactly one of the
// variant fields is meaningful, selected by State.
type RefreshOutcome struct {
	State         RefreshState
	UpdatedCodes  []string   // RefreshDone
	SkipReason    SkipReason // RefreshSkipped
	NextAllowedAt time.Time  // RefreshSkipped
	Err           error      // RefreshFailed
}

// RefreshSchedule is derived metadata, recomputed on every query.
type RefreshSchedule struct {
	IntervalMinutes int
	NextAllowedAt   time.Time
}

// FetchState records the outcome of the most recent provider call, shared
// across all currencies.
type FetchState struct {
	LastSuccessAt *time.Time
	LastError     string
	LastErrorAt   *time.Time
}

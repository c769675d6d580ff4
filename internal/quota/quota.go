// Package quota decides whether a proposed booth amount change is admissible.
// It is the single rule set behind booking creation and editing; callers fetch
// the exhibition quota and the other-booking totals, the package only does the
// arithmetic.
package quota

import (
	"fmt"
	"time"
)

// MaxTotalUnits is the combined ceiling across both booth types for one
// booking group at one exhibition.
const MaxTotalUnits = 6

type BoothType string

const (
	BoothSmall BoothType = "small"
	BoothBig   BoothType = "big"
)

// Valid reports whether t is a known booth type.
func (t BoothType) Valid() bool {
	return t == BoothSmall || t == BoothBig
}

// Scope selects how the caller aggregates other-booking totals: per user
// within one exhibition, or across all users of the exhibition. The cap rule
// itself is scope-agnostic.
type Scope string

const (
	ScopePerUser Scope = "perUser"
	ScopeGlobal  Scope = "global"
)

func (s Scope) Valid() bool {
	return s == ScopePerUser || s == ScopeGlobal
}

type Decision int

const (
	Accepted Decision = iota
	CombinedCapExceeded
	QuotaIncreaseExceeded
)

func (d Decision) String() string {
	switch d {
	case Accepted:
		return "accepted"
	case CombinedCapExceeded:
		return "combined_cap_exceeded"
	case QuotaIncreaseExceeded:
		return "quota_increase_exceeded"
	default:
		return "unknown"
	}
}

// Input carries everything Decide needs. OtherSmallTotal and OtherBigTotal
// are sums over all booking records in the group except the one being
// changed. PriorAmount is 0 for a brand-new booking. Quota is the exhibition
// ceiling for the booth type being changed.
type Input struct {
	BoothType       BoothType
	ProposedAmount  int
	PriorAmount     int
	OtherSmallTotal int
	OtherBigTotal   int
	Quota           int
}

// Result reports the decision plus the numbers that explain it, so callers
// can render an exact message.
type Result struct {
	Decision   Decision
	Delete     bool // proposed amount was 0; the record should be removed
	TotalSmall int
	TotalBig   int
	MaxTotal   int
	Delta      int
	Quota      int
}

// Err returns nil for an accepted result, otherwise a *RejectionError.
func (r Result) Err() error {
	switch r.Decision {
	case CombinedCapExceeded:
		return &RejectionError{
			Decision: r.Decision,
			Message:  fmt.Sprintf("Total units can not exceed %d.", r.MaxTotal),
		}
	case QuotaIncreaseExceeded:
		return &RejectionError{
			Decision: r.Decision,
			Message:  fmt.Sprintf("Increasing can not exceed %d.", r.Quota),
		}
	}
	return nil
}

// RejectionError is returned by Result.Err for a rejected change.
type RejectionError struct {
	Decision Decision
	Message  string
}

func (e *RejectionError) Error() string {
	return e.Message
}

// Decide applies the booth quota rules to a proposed change. It is pure:
// identical inputs always produce identical results.
//
// A proposed amount of 0 means the record is being cancelled. Removal cannot
// raise either total, so it is accepted outright and flagged for deletion.
//
// Otherwise the combined cap is checked first: the group's post-change totals
// across both booth types must not exceed MaxTotalUnits (inclusive). Then the
// increase rule: the amount by which this record grows must not exceed the
// booth type's quota. The quota bounds only the increase, not the final
// amount.
func Decide(in Input) Result {
	res := Result{
		Decision:   Accepted,
		TotalSmall: in.OtherSmallTotal,
		TotalBig:   in.OtherBigTotal,
		MaxTotal:   MaxTotalUnits,
		Delta:      in.ProposedAmount - in.PriorAmount,
		Quota:      in.Quota,
	}

	if in.ProposedAmount == 0 {
		res.Delete = true
		return res
	}

	switch in.BoothType {
	case BoothBig:
		res.TotalBig += in.ProposedAmount
	default:
		res.TotalSmall += in.ProposedAmount
	}

	if res.TotalSmall+res.TotalBig > MaxTotalUnits {
		res.Decision = CombinedCapExceeded
		return res
	}

	if res.Delta > 0 && res.Delta > in.Quota {
		res.Decision = QuotaIncreaseExceeded
		return res
	}

	return res
}

// WithinWindow reports whether day falls inside the exhibition's run,
// [startDate, startDate+durationDay-1] inclusive, comparing calendar days.
func WithinWindow(day, startDate time.Time, durationDay int) bool {
	if durationDay < 1 {
		return false
	}
	day = truncateDay(day)
	first := truncateDay(startDate)
	last := first.AddDate(0, 0, durationDay-1)
	return !day.Before(first) && !day.After(last)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

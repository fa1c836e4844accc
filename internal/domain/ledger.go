package domain

import (
	"errors"
	"sort"
	"time"
)

// ErrIntervalConflict возвращается при попытке вставить в леджер интервал,
// пересекающийся с уже подтверждённым
var ErrIntervalConflict = errors.New("domain: interval conflicts with a confirmed stay")

// AvailabilityLedger is the per-apartment collection of confirmed stay
// intervals, kept sorted by check-in and free of overlaps. The zero value is
// an empty ledger. The type itself is not goroutine-safe: callers serialize
// mutations per apartment (in production the rows backing the ledger are read
// FOR UPDATE inside a serializable transaction).
type AvailabilityLedger struct {
	intervals []StayInterval
}

// NewAvailabilityLedger builds a ledger from confirmed intervals.
// Input intervals are assumed non-overlapping (the insertion invariant of the
// persistent ledger); they are sorted by check-in for early-exit scans.
func NewAvailabilityLedger(intervals []StayInterval) *AvailabilityLedger {
	sorted := make([]StayInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CheckIn.Before(sorted[j].CheckIn)
	})
	return &AvailabilityLedger{intervals: sorted}
}

// Len returns the number of confirmed intervals in the ledger
func (l *AvailabilityLedger) Len() int {
	return len(l.intervals)
}

// Intervals returns a copy of the confirmed intervals in check-in order
func (l *AvailabilityLedger) Intervals() []StayInterval {
	out := make([]StayInterval, len(l.intervals))
	copy(out, l.intervals)
	return out
}

// IsFree returns true iff no confirmed interval overlaps the candidate.
// The ledger is sorted by check-in, so the scan stops at the first entry
// starting on or after the candidate's check-out.
func (l *AvailabilityLedger) IsFree(candidate StayInterval) bool {
	for _, iv := range l.intervals {
		if !iv.CheckIn.Before(candidate.CheckOut) {
			break
		}
		if iv.Overlaps(candidate) {
			return false
		}
	}
	return true
}

// NextBlockingStart returns the earliest check-in strictly after the given
// date, or nil if no confirmed stay starts later. Used to cap how far a
// check-out may be pushed before hitting the next confirmed guest.
func (l *AvailabilityLedger) NextBlockingStart(after time.Time) *time.Time {
	for _, iv := range l.intervals {
		if iv.CheckIn.After(after) {
			start := iv.CheckIn
			return &start
		}
	}
	return nil
}

// Reserve verifies the interval is free and inserts it, keeping sort order.
// Check and insert happen as one step; callers must treat Reserve as part of
// the per-apartment critical section.
func (l *AvailabilityLedger) Reserve(interval StayInterval) error {
	if err := interval.Validate(); err != nil {
		return err
	}
	if !l.IsFree(interval) {
		return ErrIntervalConflict
	}
	pos := sort.Search(len(l.intervals), func(i int) bool {
		return l.intervals[i].CheckIn.After(interval.CheckIn)
	})
	l.intervals = append(l.intervals, StayInterval{})
	copy(l.intervals[pos+1:], l.intervals[pos:])
	l.intervals[pos] = interval
	return nil
}

// Release removes the exact interval from the ledger. A no-op if the interval
// is not present: cancellation must stay idempotent.
func (l *AvailabilityLedger) Release(interval StayInterval) {
	for i, iv := range l.intervals {
		if iv.Equal(interval) {
			l.intervals = append(l.intervals[:i], l.intervals[i+1:]...)
			return
		}
	}
}

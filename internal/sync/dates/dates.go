// Package dates enforces the ordering invariants between posting, document
// and due dates. All operations are idempotent: re-applying them to already
// normalized output is a no-op.
package dates

import "time"

const layout = "2006-01-02"

// Parse decodes a QuickBooks date string (YYYY-MM-DD); empty or malformed
// input yields the zero time so callers can apply their defaults.
func Parse(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Day truncates to a calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeInvoiceDates returns (posting, doc, due). Absent posting defaults
// to now, absent doc/due default to posting, and due is clamped forward to
// not precede max(posting, doc).
func NormalizeInvoiceDates(posting, due, doc, now time.Time) (time.Time, time.Time, time.Time) {
	if posting.IsZero() {
		posting = Day(now)
	} else {
		posting = Day(posting)
	}
	if doc.IsZero() {
		doc = posting
	} else {
		doc = Day(doc)
	}
	if due.IsZero() {
		due = posting
	} else {
		due = Day(due)
	}

	minAllowed := posting
	if doc.After(minAllowed) {
		minAllowed = doc
	}
	if due.Before(minAllowed) {
		due = minAllowed
	}
	return posting, doc, due
}

// AdjustJournalDates returns (posting, due) with absent values defaulted to
// now/posting and due clamped to not precede posting.
func AdjustJournalDates(posting, due, now time.Time) (time.Time, time.Time) {
	if posting.IsZero() {
		posting = Day(now)
	} else {
		posting = Day(posting)
	}
	if due.IsZero() {
		due = posting
	} else {
		due = Day(due)
	}
	if due.Before(posting) {
		due = posting
	}
	return posting, due
}

package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParse(t *testing.T) {
	assert.Equal(t, day("2026-03-10"), Parse("2026-03-10"))
	assert.True(t, Parse("").IsZero())
	assert.True(t, Parse("not-a-date").IsZero())
}

func TestNormalizeInvoiceDates(t *testing.T) {
	now := time.Date(2026, 5, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name                        string
		posting, due, doc           time.Time
		wantPosting, wantDoc, wantDue time.Time
	}{
		{
			name:        "all present and ordered",
			posting:     day("2026-03-01"),
			doc:         day("2026-03-02"),
			due:         day("2026-03-31"),
			wantPosting: day("2026-03-01"),
			wantDoc:     day("2026-03-02"),
			wantDue:     day("2026-03-31"),
		},
		{
			name:        "due before posting is clamped",
			posting:     day("2026-03-10"),
			due:         day("2026-03-01"),
			wantPosting: day("2026-03-10"),
			wantDoc:     day("2026-03-10"),
			wantDue:     day("2026-03-10"),
		},
		{
			name:        "due before later doc date is clamped to doc",
			posting:     day("2026-03-01"),
			doc:         day("2026-03-15"),
			due:         day("2026-03-05"),
			wantPosting: day("2026-03-01"),
			wantDoc:     day("2026-03-15"),
			wantDue:     day("2026-03-15"),
		},
		{
			name:        "everything absent defaults to now",
			wantPosting: day("2026-05-01"),
			wantDoc:     day("2026-05-01"),
			wantDue:     day("2026-05-01"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			posting, doc, due := NormalizeInvoiceDates(tc.posting, tc.due, tc.doc, now)
			assert.Equal(t, tc.wantPosting, posting)
			assert.Equal(t, tc.wantDoc, doc)
			assert.Equal(t, tc.wantDue, due)

			// Idempotence: normalizing already normalized values changes nothing.
			posting2, doc2, due2 := NormalizeInvoiceDates(posting, due, doc, now)
			assert.Equal(t, posting, posting2)
			assert.Equal(t, doc, doc2)
			assert.Equal(t, due, due2)
		})
	}
}

func TestAdjustJournalDates(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	posting, due := AdjustJournalDates(day("2026-04-10"), day("2026-04-01"), now)
	assert.Equal(t, day("2026-04-10"), posting)
	assert.Equal(t, day("2026-04-10"), due)

	posting, due = AdjustJournalDates(time.Time{}, time.Time{}, now)
	assert.Equal(t, day("2026-05-01"), posting)
	assert.Equal(t, day("2026-05-01"), due)

	posting2, due2 := AdjustJournalDates(posting, due, now)
	assert.Equal(t, posting, posting2)
	assert.Equal(t, due, due2)
}

package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromName(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"Account", KindAccount, true},
		{"accounts", KindAccount, true},
		{"Vendor", KindSupplier, true},
		{"suppliers", KindSupplier, true},
		{"JournalEntry", KindJournalEntry, true},
		{"journalentries", KindJournalEntry, true},
		{"INVOICE", KindInvoice, true},
		{"Widget", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		kind, ok := KindFromName(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, kind, "input %q", tc.in)
		}
	}
}

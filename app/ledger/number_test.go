package ledger

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReceiptNumberFormat(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	n := ReceiptNumber(at)
	assert.Regexp(t, regexp.MustCompile(`^RCP-20250310-[0-9A-F]{8}$`), n)
}

func TestReceiptNumberUniqueness(t *testing.T) {
	at := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := ReceiptNumber(at)
		assert.False(t, seen[n], "duplicate receipt number %s", n)
		seen[n] = true
	}
}

package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReceiptNumber generates a human-presentable receipt number of the form
// RCP-20250114-3F2A9C71. The date keeps numbers roughly sortable at the desk;
// the uuid fragment makes collisions impractical, and the receipts table
// carries a unique index as the hard guarantee.
func ReceiptNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("RCP-%s-%s", at.Format("20060102"), suffix)
}

package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NextID returns prefix followed by one more than the largest numeric suffix
// among ids carrying that prefix, zero padded to width digits.
// NextID([]string{"op_001", "op_007"}, "op_", 3) == "op_008".
func NextID(ids []string, prefix string, width int) string {
	maxN := 0
	for _, id := range ids {
		suffix, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > maxN {
			maxN = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, maxN+1)
}

// NewAuditID builds a unique audit log id from the timestamp plus a short
// random suffix so entries written in the same millisecond do not collide.
func NewAuditID(now time.Time) string {
	return fmt.Sprintf("audit_%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

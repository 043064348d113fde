// AngelaMos | 2026
// ids.go

package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Business identifiers keep the legacy string prefixes (ORD…, EXP…) but
// derive their body from a timestamp plus a UUID fragment instead of a bare
// millisecond clock, which collides under concurrent creation.

const (
	OrderNumberPrefix = "ORD"
	ExpenseIDPrefix   = "EXP"
)

func NewOrderNumber() string {
	return prefixedID(OrderNumberPrefix)
}

func NewExpenseID() string {
	return prefixedID(ExpenseIDPrefix)
}

func prefixedID(prefix string) string {
	ts := time.Now().UTC().Format("20060102150405")
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("%s%s%s", prefix, ts, suffix)
}

// AngelaMos | 2026
// ids_test.go

package core

import (
	"strings"
	"testing"
)

func TestPrefixedIDFormat(t *testing.T) {
	t.Parallel()

	orderNum := NewOrderNumber()
	if !strings.HasPrefix(orderNum, "ORD") {
		t.Errorf("order number %q missing ORD prefix", orderNum)
	}
	// prefix(3) + timestamp(14) + uuid fragment(8)
	if len(orderNum) != 25 {
		t.Errorf("order number %q length = %d, want 25", orderNum, len(orderNum))
	}

	expenseID := NewExpenseID()
	if !strings.HasPrefix(expenseID, "EXP") {
		t.Errorf("expense id %q missing EXP prefix", expenseID)
	}
}

func TestPrefixedIDUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewOrderNumber()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

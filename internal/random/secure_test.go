package random

import "testing"

func TestTransactionIDVaries(t *testing.T) {
	seen := make(map[uint16]bool)
	for i := 0; i < 100; i++ {
		seen[TransactionID()] = true
	}
	if len(seen) < 90 {
		t.Errorf("expected high cardinality of transaction ids, got %d distinct out of 100", len(seen))
	}
}

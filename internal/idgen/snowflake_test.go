package idgen

import (
	"strings"
	"testing"
	"time"
)

func TestInvoiceNumberIsUniqueAndPrefixed(t *testing.T) {
	gen, err := NewGenerator(1)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		number := gen.InvoiceNumber("", at)
		if !strings.HasPrefix(number, "INV-202405-") {
			t.Fatalf("unexpected number %s", number)
		}
		if _, dup := seen[number]; dup {
			t.Fatalf("duplicate number %s", number)
		}
		seen[number] = struct{}{}
	}
}

func TestNewGeneratorRejectsBadNode(t *testing.T) {
	if _, err := NewGenerator(5000); err == nil {
		t.Fatalf("node id out of range should fail")
	}
}

package utils

import (
	"strings"
	"testing"
)

func TestNewTicketIDFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := NewTicketID()
		if len(id) != TicketIDLength {
			t.Fatalf("ticket %q has length %d, want %d", id, len(id), TicketIDLength)
		}
		for _, r := range id {
			if !strings.ContainsRune("0123456789ABCDEF-", r) {
				t.Fatalf("ticket %q contains unexpected character %q", id, r)
			}
		}
		if id != strings.ToUpper(id) {
			t.Fatalf("ticket %q is not uppercase", id)
		}
		seen[id] = true
	}
	if len(seen) < 190 {
		t.Fatalf("ticket ids collide far too often: %d unique of 200", len(seen))
	}
}

func TestNormalizeTicketID(t *testing.T) {
	cases := map[string]string{
		"  abcd1234 ": "ABCD1234",
		"ABCD1234":    "ABCD1234",
		"\tAbCd1234\n": "ABCD1234",
		"":            "",
		"   ":         "",
	}
	for in, want := range cases {
		if got := NormalizeTicketID(in); got != want {
			t.Fatalf("NormalizeTicketID(%q) = %q, want %q", in, got, want)
		}
	}
}

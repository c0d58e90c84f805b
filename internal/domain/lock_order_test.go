package domain

import "testing"

func TestLockOrder(t *testing.T) {
	first, second := LockOrder("ACC-bbbbbbbb", "ACC-aaaaaaaa")
	if first != "ACC-aaaaaaaa" || second != "ACC-bbbbbbbb" {
		t.Fatalf("expected sorted order, got %s, %s", first, second)
	}

	// Symmetric inputs produce the same order.
	f2, s2 := LockOrder("ACC-aaaaaaaa", "ACC-bbbbbbbb")
	if f2 != first || s2 != second {
		t.Fatalf("lock order must not depend on argument order")
	}

	f3, s3 := LockOrder("ACC-aaaaaaaa", "ACC-aaaaaaaa")
	if f3 != s3 {
		t.Fatalf("expected identical pair, got %s, %s", f3, s3)
	}
}

package ioplugin

import "testing"

func TestFutureResolvesOnce(t *testing.T) {
	f, resolve := NewFuture[int]()
	if f.Ready() {
		t.Fatal("expected unresolved future to report not ready")
	}
	resolve(7, nil)
	resolve(9, nil) // must be a no-op
	v, err := f.Result()
	if err != nil || v != 7 {
		t.Fatalf("Result() = (%d, %v), want (7, nil)", v, err)
	}
}

func TestFuturePeek(t *testing.T) {
	f, resolve := NewFuture[string]()
	if _, _, ok := f.Peek(); ok {
		t.Fatal("expected Peek to report not-ready before resolve")
	}
	resolve("hi", nil)
	v, err, ok := f.Peek()
	if !ok || err != nil || v != "hi" {
		t.Fatalf("Peek() = (%q, %v, %v)", v, err, ok)
	}
}

func TestResolvedIsImmediatelyReady(t *testing.T) {
	f := Resolved(5, nil)
	if !f.Ready() {
		t.Fatal("expected Resolved future to be ready immediately")
	}
}

package timeline

// Handle is a stable integer identity for a Clip, Gap, Track or Stack.
// Since the timeline tree is constructed once and never mutated after
// load (spec §3 Lifecycles), an arena + integer handle gives pointer-free,
// comparable identity for keying readers — the idiomatic Go stand-in for
// the spec's "pointer/arena-index into the timeline tree" suggestion (§9).
type Handle int

// Arena hands out sequential Handles during tree construction. It has no
// purpose after the tree is built; it exists purely so every node gets a
// distinct, stable Handle.
type Arena struct {
	next Handle
}

// NewArena creates an empty arena.
func NewArena() *Arena { return &Arena{} }

// Alloc returns the next unused Handle.
func (a *Arena) Alloc() Handle {
	h := a.next
	a.next++
	return h
}

// Package textdiff computes the minimal single contiguous edit region
// between two versions of a text buffer.
package textdiff

// Result describes one contiguous edit: RemovedLen characters starting at
// Start were replaced by InsertedLen characters. Offsets and lengths count
// runes. A nil *Result means the two versions are identical.
//
// When the true edit touched several disjoint regions the result collapses
// them into one region spanning all of them. Anchor adjustment is designed
// around exactly this contract, so callers must not try to reconstruct
// multi-site edits from it.
type Result struct {
	Start       int
	RemovedLen  int
	InsertedLen int
}

// End returns the exclusive end of the removed region in the previous text.
func (r Result) End() int {
	return r.Start + r.RemovedLen
}

// Delta returns the net length change of the edit.
func (r Result) Delta() int {
	return r.InsertedLen - r.RemovedLen
}

// Diff compares previous and next, returning the single changed region or
// nil when the strings are equal. The common prefix is trimmed first, then
// the common suffix; the suffix scan stops at the prefix boundary so the two
// never overlap.
func Diff(previous, next string) *Result {
	if previous == next {
		return nil
	}

	prev := []rune(previous)
	cur := []rune(next)

	start := 0
	for start < len(prev) && start < len(cur) && prev[start] == cur[start] {
		start++
	}

	prevEnd := len(prev)
	curEnd := len(cur)
	for prevEnd > start && curEnd > start && prev[prevEnd-1] == cur[curEnd-1] {
		prevEnd--
		curEnd--
	}

	return &Result{
		Start:       start,
		RemovedLen:  prevEnd - start,
		InsertedLen: curEnd - start,
	}
}

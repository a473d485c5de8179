package textdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		previous string
		next     string
		want     *Result
	}{
		{"identical", "same", "same", nil},
		{"both empty", "", "", nil},
		{"pure insert", "ab", "aXb", &Result{Start: 1, RemovedLen: 0, InsertedLen: 1}},
		{"pure delete", "aXb", "ab", &Result{Start: 1, RemovedLen: 1, InsertedLen: 0}},
		{"replace equal length", "The cat sat.", "The dog sat.", &Result{Start: 4, RemovedLen: 3, InsertedLen: 3}},
		{"replace longer", "The cat sat.", "The gerbil sat.", &Result{Start: 4, RemovedLen: 3, InsertedLen: 6}},
		{"prepend", "tail", "head tail", &Result{Start: 0, RemovedLen: 0, InsertedLen: 5}},
		{"append", "head", "head tail", &Result{Start: 4, RemovedLen: 0, InsertedLen: 5}},
		{"everything replaced", "abc", "xyz", &Result{Start: 0, RemovedLen: 3, InsertedLen: 3}},
		{"emptied", "abc", "", &Result{Start: 0, RemovedLen: 3, InsertedLen: 0}},
		{"filled", "", "abc", &Result{Start: 0, RemovedLen: 0, InsertedLen: 3}},
		// Two disjoint edits collapse to one region spanning both.
		{"disjoint edits collapse", "a b c d e", "A b c d E", &Result{Start: 0, RemovedLen: 9, InsertedLen: 9}},
		// Repeated characters: the suffix scan must not walk past the prefix.
		{"repeat insert", "aaa", "aaaa", &Result{Start: 3, RemovedLen: 0, InsertedLen: 1}},
		{"repeat delete", "aaaa", "aaa", &Result{Start: 3, RemovedLen: 1, InsertedLen: 0}},
		{"unicode", "déjà vu", "déjà lu", &Result{Start: 5, RemovedLen: 1, InsertedLen: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.previous, tt.next)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Applying a diff to the previous text must reproduce the next text exactly.
func TestDiff_Reconstruction(t *testing.T) {
	pairs := [][2]string{
		{"The cat sat.", "The dog sat."},
		{"", "hello"},
		{"hello", ""},
		{"abcdef", "abXYef"},
		{"one two three", "one 2 three"},
		{"aaa", "aabaa"},
		{"mixed déjà text", "mixed détour text"},
		{"a b c d e", "A b c d E"},
	}

	for _, pair := range pairs {
		prev, next := pair[0], pair[1]
		r := Diff(prev, next)
		require.NotNil(t, r, "Diff(%q, %q)", prev, next)

		prevRunes := []rune(prev)
		nextRunes := []rune(next)
		middle := string(nextRunes[r.Start : r.Start+r.InsertedLen])
		rebuilt := string(prevRunes[:r.Start]) + middle + string(prevRunes[r.End():])
		assert.Equal(t, next, rebuilt, "Diff(%q, %q) = %+v", prev, next, *r)
	}
}

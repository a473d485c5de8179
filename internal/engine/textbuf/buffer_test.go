package textbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_Replace(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		insert     string
		want       string
	}{
		{"replace middle", "The cat sat.", 4, 7, "dog", "The dog sat."},
		{"insert at start", "cat", 0, 0, "the ", "the cat"},
		{"append", "cat", 3, 3, "s", "cats"},
		{"delete", "The cat sat.", 3, 7, "", "The sat."},
		{"replace all", "old", 0, 3, "new", "new"},
		{"clamped end", "abc", 1, 99, "X", "aX"},
		{"negative start", "abc", -5, 1, "X", "Xbc"},
		{"inverted range inserts", "abc", 2, 1, "X", "abXc"},
		{"unicode runes", "§12 déjà", 4, 8, "vu", "§12 vu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("doc", tt.text)
			b.Replace(tt.start, tt.end, tt.insert)
			assert.Equal(t, tt.want, b.Text())
		})
	}
}

func TestBuffer_Slice(t *testing.T) {
	b := New("doc", "The cat sat.")

	assert.Equal(t, "cat", b.Slice(4, 7))
	assert.Equal(t, "", b.Slice(7, 7))
	assert.Equal(t, "sat.", b.Slice(8, 50))
	assert.Equal(t, "", b.Slice(9, 4))
	assert.Equal(t, 12, b.Len())
}

func TestBuffer_RuneOffsets(t *testing.T) {
	// Offsets count characters, not bytes.
	b := New("doc", "naïve café")
	assert.Equal(t, 10, b.Len())
	assert.Equal(t, "café", b.Slice(6, 10))

	b.Replace(0, 5, "plain")
	assert.Equal(t, "plain café", b.Text())
}

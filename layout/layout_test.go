package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestWrappedRows(t *testing.T) {
	tests := []struct {
		name  string
		width int
		text  string
		want  []int
	}{
		{name: "empty", width: 10, text: "", want: []int{0}},
		{name: "fits", width: 20, text: "hello world", want: []int{11}},
		{name: "no wrap when width is zero", width: 0, text: "hello world", want: []int{11}},
		{name: "breaks at word", width: 8, text: "hello world", want: []int{6, 5}},
		{name: "trailing spaces hang", width: 5, text: "abcde   f", want: []int{8, 1}},
		{name: "long word is split", width: 4, text: "abcdefghij", want: []int{4, 4, 2}},
		{name: "wide runes", width: 4, text: "日本語", want: []int{2, 1}},
		{name: "three rows", width: 6, text: "one two three", want: []int{4, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.width).WrappedRows(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("WrappedRows(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestWrappedRowsCoverText(t *testing.T) {
	l := New(7)
	for _, text := range []string{"a b c d e f g h", "  leading", "word    gaps  here", "日本語のテキスト"} {
		total := 0
		for _, n := range l.WrappedRows(text) {
			total += n
		}
		assert.Equal(t, len([]rune(text)), total, text)
	}
}

func TestCaretOffset(t *testing.T) {
	l := New(8)

	assert.Equal(t, 0, l.CaretOffset("hello world", 0))
	assert.Equal(t, 5, l.CaretOffset("hello world", 5))
	// Column 6 starts the second row.
	assert.Equal(t, 0, l.CaretOffset("hello world", 6))
	assert.Equal(t, 5, l.CaretOffset("hello world", 11))
	assert.Equal(t, 5, l.CaretOffset("hello world", 99))

	wide := New(0)
	assert.Equal(t, 4, wide.CaretOffset("日本語", 2))
	assert.Equal(t, 3, wide.CaretOffset("a日b", 2))
}

func TestRowOf(t *testing.T) {
	rows := []int{6, 5}

	row, start := RowOf(rows, 0)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, start)

	row, start = RowOf(rows, 6)
	assert.Equal(t, 1, row)
	assert.Equal(t, 6, start)

	row, start = RowOf(rows, 11)
	assert.Equal(t, 1, row)
	assert.Equal(t, 6, start)
}

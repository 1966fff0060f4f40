package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueRunsInOrder(t *testing.T) {
	var q Queue
	var got []int

	q.Defer(func() {
		got = append(got, 1)
		q.Defer(func() { got = append(got, 3) })
	})
	q.Defer(func() { got = append(got, 2) })

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 3, q.Flush())
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Zero(t, q.Len())
	assert.Zero(t, q.Flush())
}

package fetch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateConstructors(t *testing.T) {
	p := Pending[[]string](1)
	assert.True(t, p.IsPending())
	assert.NoError(t, p.Error())

	r := Ready(2, []string{"a"})
	assert.True(t, r.IsReady())
	assert.Equal(t, []string{"a"}, r.Data)
	assert.Equal(t, uint64(2), r.Generation)

	f := Failed[[]string](3, errors.New("boom"))
	assert.True(t, f.IsFailed())
	assert.EqualError(t, f.Error(), "boom")
	assert.Equal(t, "failed", f.Status.String())
}

func TestResolve(t *testing.T) {
	assert.True(t, Resolve(1, 5, nil).IsReady())
	assert.True(t, Resolve(1, 0, errors.New("x")).IsFailed())
}

func TestFirstError(t *testing.T) {
	users := Failed[[]int](1, errors.New("users down"))
	posts := Failed[[]string](1, errors.New("posts down"))
	ok := Ready(1, []string{})

	msg, failed := FirstError(users, posts)
	assert.True(t, failed)
	assert.Equal(t, "users down", msg)

	msg, failed = FirstError(Ready(1, []int{}), posts)
	assert.True(t, failed)
	assert.Equal(t, "posts down", msg)

	_, failed = FirstError(ok, Pending[[]int](1))
	assert.False(t, failed)
}

func TestTracker(t *testing.T) {
	var tr Tracker
	a := tr.Next()
	b := tr.Next()

	assert.False(t, tr.IsCurrent(a))
	assert.True(t, tr.IsCurrent(b))
	assert.Equal(t, b, tr.Latest())
}

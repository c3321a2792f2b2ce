package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestRecorder(t *testing.T) {
	t.Run("Errorf", func(t *testing.T) {
		var tr TestRecorder
		tr.Errorf("hello %s", "there")
		tr.Errorf("bye")
		assert.Equal(t, []string{"hello there", "bye"}, tr.Errors)
		assert.False(t, tr.Terminated)
		assert.True(t, tr.Failed())
	})

	t.Run("FailNow", func(t *testing.T) {
		var tr1 TestRecorder
		tr1.FailNow()
		assert.True(t, tr1.Terminated)
		assert.True(t, tr1.Failed())

		tr2 := TestRecorder{PanicOnTerminate: true}
		assert.PanicsWithValue(t, &tr2, func() { tr2.FailNow() })
		assert.True(t, tr2.Terminated)
	})

	t.Run("Err", func(t *testing.T) {
		var tr TestRecorder
		assert.Nil(t, tr.Err())
		assert.False(t, tr.Failed())

		tr.Errorf("hello %s", "there")
		tr.Errorf("bye")
		assert.Equal(t, errors.New("hello there, bye"), tr.Err())
	})

	t.Run("works with testify", func(t *testing.T) {
		var tr TestRecorder
		assert.Equal(&tr, 1, 2)
		require.Len(t, tr.Errors, 1)
		assert.Contains(t, tr.Errors[0], "Not equal")
	})
}

package listener

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_NotifyPassesSnapshot(t *testing.T) {
	r := New()

	var got string
	r.Add(func(buffer string) error {
		got = buffer
		return nil
	})

	require.NoError(t, r.Notify("cat dog"))
	require.Equal(t, "cat dog", got)
}

func TestRegistry_InvocationFollowsRegistrationOrder(t *testing.T) {
	r := New()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		r.Add(func(string) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, r.Notify(""))
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestRegistry_Remove(t *testing.T) {
	r := New()

	var calls []string
	keep := func(string) error { calls = append(calls, "keep"); return nil }
	drop := func(string) error { calls = append(calls, "drop"); return nil }

	r.Add(keep)
	h := r.Add(drop)
	require.Equal(t, 2, r.Len())

	require.True(t, r.Remove(h))
	require.Equal(t, 1, r.Len())
	require.False(t, r.Remove(h), "second removal of same handle")

	require.NoError(t, r.Notify(""))
	require.Equal(t, []string{"keep"}, calls)
}

func TestRegistry_FailingListenerDoesNotStopOthers(t *testing.T) {
	r := New()

	sentinel := errors.New("recompute failed")
	var ranAfter bool
	r.Add(func(string) error { return sentinel })
	r.Add(func(string) error { ranAfter = true; return nil })

	err := r.Notify("hello")
	require.ErrorIs(t, err, sentinel)
	require.True(t, ranAfter)
}

func TestRegistry_JoinsAllErrors(t *testing.T) {
	r := New()

	errA := errors.New("a failed")
	errB := errors.New("b failed")
	r.Add(func(string) error { return errA })
	r.Add(func(string) error { return nil })
	r.Add(func(string) error { return errB })

	err := r.Notify("")
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
}

func TestRegistry_InstancesAreIndependent(t *testing.T) {
	a, b := New(), New()

	var aCalls int
	a.Add(func(string) error { aCalls++; return nil })

	require.NoError(t, b.Notify("x"))
	require.Zero(t, aCalls)
	require.Zero(t, b.Len())
}

func TestRegistry_NotifyWithNoListeners(t *testing.T) {
	require.NoError(t, New().Notify("anything"))
}

func TestRegistry_ListenerMayMutateRegistry(t *testing.T) {
	r := New()

	// A listener that removes itself during dispatch must not corrupt the
	// in-flight notification.
	var h Handle
	var selfCalls, otherCalls int
	h = r.Add(func(string) error {
		selfCalls++
		r.Remove(h)
		return nil
	})
	r.Add(func(string) error { otherCalls++; return nil })

	require.NoError(t, r.Notify("x"))
	require.NoError(t, r.Notify("y"))

	require.Equal(t, 1, selfCalls)
	require.Equal(t, 2, otherCalls)
}

package appearance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

func TestManualSetNotifiesWatchers(t *testing.T) {
	src := NewManual(types.SchemeLight)

	var got []types.ColorScheme
	stop, err := src.Watch(func(p types.ColorScheme) { got = append(got, p) })
	require.NoError(t, err)

	src.Set(types.SchemeDark)
	src.Set(types.SchemeDark) // unchanged, no event
	src.Set(types.SchemeLight)

	assert.Equal(t, []types.ColorScheme{types.SchemeDark, types.SchemeLight}, got)
	assert.Equal(t, types.SchemeLight, src.Preference())

	stop()
	src.Set(types.SchemeDark)
	assert.Len(t, got, 2, "stopped watcher must not fire")
}

func TestStopIsIdempotent(t *testing.T) {
	src := NewManual(types.SchemeLight)
	stopA, _ := src.Watch(func(types.ColorScheme) {})
	_, _ = src.Watch(func(types.ColorScheme) {})
	require.Equal(t, 2, src.Watchers())

	stopA()
	stopA()
	assert.Equal(t, 1, src.Watchers())
}

func TestActivationFollowsWatcherCount(t *testing.T) {
	src := NewManual(types.SchemeLight)
	active := 0
	src.activate = func() (func(), error) {
		active++
		return func() { active-- }, nil
	}

	stop1, _ := src.Watch(func(types.ColorScheme) {})
	stop2, _ := src.Watch(func(types.ColorScheme) {})
	assert.Equal(t, 1, active, "activate runs once for the first watcher")

	stop1()
	assert.Equal(t, 1, active)
	stop2()
	assert.Equal(t, 0, active, "deactivate runs when the last watcher leaves")

	stop3, _ := src.Watch(func(types.ColorScheme) {})
	assert.Equal(t, 1, active)
	stop3()
	assert.Equal(t, 0, active)
}

func TestActivationError(t *testing.T) {
	src := NewManual(types.SchemeLight)
	src.activate = func() (func(), error) { return nil, errors.New("bus down") }

	_, err := src.Watch(func(types.ColorScheme) {})
	assert.Error(t, err)
	assert.Equal(t, 0, src.Watchers())
}

func TestWatcherMayCallBack(t *testing.T) {
	src := NewManual(types.SchemeLight)
	var seen types.ColorScheme
	_, _ = src.Watch(func(types.ColorScheme) {
		// Reading back from inside a watcher must not deadlock
		seen = src.Preference()
	})
	src.Set(types.SchemeDark)
	assert.Equal(t, types.SchemeDark, seen)
}

func TestNewKinds(t *testing.T) {
	src, err := New(context.Background(), KindDark)
	require.NoError(t, err)
	assert.Equal(t, types.SchemeDark, src.Preference())

	src, err = New(context.Background(), KindLight)
	require.NoError(t, err)
	assert.Equal(t, types.SchemeLight, src.Preference())

	_, err = New(context.Background(), "sepia")
	var invalid *core.InvalidSchemeError
	assert.ErrorAs(t, err, &invalid)
}

func TestNormalizeUnknownIsLight(t *testing.T) {
	src := NewManual("no-preference")
	assert.Equal(t, types.SchemeLight, src.Preference())
}

package notify

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_DrainClearsQueue(t *testing.T) {
	r := NewRecorder(nil)

	r.Warning("login first")
	r.Error("backend down")

	notifications := r.Drain()
	require.Len(t, notifications, 2)
	assert.Equal(t, SeverityWarning, notifications[0].Severity)
	assert.Equal(t, "login first", notifications[0].Message)
	assert.Equal(t, SeverityError, notifications[1].Severity)

	assert.Empty(t, r.Drain(), "drain must clear the queue")
}

func TestRecorder_ForwardsToNext(t *testing.T) {
	inner := NewRecorder(nil)
	outer := NewRecorder(inner)

	outer.Success("registered")
	outer.Info("hello")

	require.Len(t, inner.Drain(), 2)
	require.Len(t, outer.Drain(), 2)
}

func TestLogNotifier_DoesNotPanic(t *testing.T) {
	n := NewLogNotifier(zerolog.Nop())

	n.Success("ok")
	n.Info("fyi")
	n.Warning("careful")
	n.Error("broken")
}

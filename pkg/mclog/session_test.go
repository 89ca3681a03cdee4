package mclog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hms string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04:05", "2024-01-01 "+hms)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestTracker_JoinQuit(t *testing.T) {
	tr := NewTracker("survival")
	tr.Join("alice", at("10:00:00"))
	assert.True(t, tr.IsOpen("alice"))

	s, ok := tr.Quit("alice", at("10:10:00"))
	require.True(t, ok)
	assert.Equal(t, Session{Server: "survival", ID: "alice", Start: at("10:00:00"), Duration: 10 * time.Minute}, s)
	assert.False(t, tr.IsOpen("alice"))
	assert.Equal(t, 0, tr.OpenCount())
}

func TestTracker_QuitWithoutJoin(t *testing.T) {
	tr := NewTracker("survival")
	_, ok := tr.Quit("alice", at("10:00:00"))
	assert.False(t, ok)
}

func TestTracker_JoinWhileOpenRestarts(t *testing.T) {
	tr := NewTracker("survival")
	tr.Join("alice", at("10:00:00"))
	tr.Join("alice", at("10:00:02"))
	assert.Equal(t, 1, tr.OpenCount())

	s, ok := tr.Quit("alice", at("10:01:00"))
	require.True(t, ok)
	assert.Equal(t, at("10:00:02"), s.Start)
	assert.Equal(t, 58*time.Second, s.Duration)
}

func TestTracker_CloseAllInJoinOrder(t *testing.T) {
	tr := NewTracker("survival")
	tr.Join("carol", at("09:00:00"))
	tr.Join("alice", at("10:00:00"))
	tr.Join("bob", at("11:00:00"))
	_, _ = tr.Quit("alice", at("11:30:00"))

	closed := tr.CloseAll(at("12:00:00"))
	require.Len(t, closed, 2)
	assert.Equal(t, "carol", closed[0].ID)
	assert.Equal(t, 3*time.Hour, closed[0].Duration)
	assert.Equal(t, "bob", closed[1].ID)
	assert.Equal(t, time.Hour, closed[1].Duration)
	assert.Equal(t, 0, tr.OpenCount())
	assert.Nil(t, tr.CloseAll(at("13:00:00")))

	// The tracker is reusable after a forced close.
	tr.Join("bob", at("12:30:00"))
	assert.True(t, tr.IsOpen("bob"))
}

func TestTracker_NegativeDurationClamped(t *testing.T) {
	tr := NewTracker("survival")
	tr.Join("alice", at("23:59:00"))

	s, ok := tr.Quit("alice", at("00:01:00"))
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), s.Duration)
}

func TestTracker_RemoveKeepsIndex(t *testing.T) {
	tr := NewTracker("survival")
	tr.Join("a", at("10:00:00"))
	tr.Join("b", at("10:00:01"))
	tr.Join("c", at("10:00:02"))

	_, ok := tr.Quit("a", at("10:01:00"))
	require.True(t, ok)

	s, ok := tr.Quit("c", at("10:02:00"))
	require.True(t, ok)
	assert.Equal(t, at("10:00:02"), s.Start)
	assert.True(t, tr.IsOpen("b"))
}

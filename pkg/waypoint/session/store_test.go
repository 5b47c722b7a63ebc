package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	s := Open(t.TempDir(), "")

	want := State{
		Destination:    "album",
		Master:         "library",
		DetailRevealed: true,
		History:        []Entry{{Destination: "home"}, {Destination: "library"}},
	}
	require.NoError(t, s.Save(want))

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Destination, got.Destination)
	assert.Equal(t, want.Master, got.Master)
	assert.True(t, got.DetailRevealed)
	assert.Equal(t, want.History, got.History)
	assert.False(t, got.SavedAt.IsZero())
}

func TestLoadEmpty(t *testing.T) {
	s := Open(t.TempDir(), "")

	_, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfilesAreSeparate(t *testing.T) {
	dir := t.TempDir()
	work := Open(dir, "work")
	play := Open(dir, "play-time")

	require.NoError(t, work.Save(State{Destination: "inbox"}))
	require.NoError(t, play.Save(State{Destination: "games"}))

	got, _, err := work.Load()
	require.NoError(t, err)
	assert.Equal(t, "inbox", got.Destination)

	got, _, err = play.Load()
	require.NoError(t, err)
	assert.Equal(t, "games", got.Destination)

	assert.ElementsMatch(t, []string{"work", "play_time"}, work.Profiles())
}

func TestClear(t *testing.T) {
	s := Open(t.TempDir(), "")
	require.NoError(t, s.Clear())

	require.NoError(t, s.Save(State{Destination: "home"}))
	require.NoError(t, s.Clear())

	_, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

package recordstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	rec := &article.Record{ID: "abc123", InitialTitle: "Hello"}
	require.NoError(t, s.Save(rec))

	got, err := s.Load("abc123")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.InitialTitle)
}

func TestStore_LoadMissingIsErrNotFound(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load("does-not-exist")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteThenListIDs(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(&article.Record{ID: "a"}))
	require.NoError(t, s.Save(&article.Record{ID: "b"}))

	ids, err := s.ListIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	require.NoError(t, s.Delete("a"))
	ids, err = s.ListIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)

	// deleting again is not an error
	require.NoError(t, s.Delete("a"))
}

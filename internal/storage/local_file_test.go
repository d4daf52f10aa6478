package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFile_AllocateReadWrite(t *testing.T) {
	f, err := OpenLocalFile(t.TempDir(), "heap")
	require.NoError(t, err)
	require.Equal(t, uint32(0), f.NumPages())

	id0, buf, err := f.AllocatePage()
	require.NoError(t, err)
	require.Equal(t, PageID(0), id0)
	require.Len(t, buf, PageSize)

	id1, _, err := f.AllocatePage()
	require.NoError(t, err)
	require.Equal(t, PageID(1), id1)

	src := make([]byte, PageSize)
	copy(src, "hello")
	require.NoError(t, f.WritePage(id1, src))

	dst := make([]byte, PageSize)
	require.NoError(t, f.ReadPage(id1, dst))
	assert.Equal(t, src, dst)
}

func TestLocalFile_UnallocatedPage(t *testing.T) {
	f, err := OpenLocalFile(t.TempDir(), "heap")
	require.NoError(t, err)

	dst := make([]byte, PageSize)
	require.ErrorIs(t, f.ReadPage(0, dst), ErrPageNotFound)
	require.ErrorIs(t, f.WritePage(0, dst), ErrPageNotFound)
	require.ErrorIs(t, f.DeletePage(0), ErrPageNotFound)
}

func TestLocalFile_DeleteReusesLowestID(t *testing.T) {
	f, err := OpenLocalFile(t.TempDir(), "heap")
	require.NoError(t, err)

	for range 4 {
		_, _, err := f.AllocatePage()
		require.NoError(t, err)
	}
	require.NoError(t, f.DeletePage(2))
	require.NoError(t, f.DeletePage(1))

	dst := make([]byte, PageSize)
	require.ErrorIs(t, f.ReadPage(1, dst), ErrPageNotFound)

	id, _, err := f.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, PageID(1), id)

	id, _, err = f.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, PageID(2), id)

	id, _, err = f.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, PageID(4), id)
}

func TestLocalFile_ReopenKeepsPages(t *testing.T) {
	dir := t.TempDir()
	f, err := OpenLocalFile(dir, "heap")
	require.NoError(t, err)

	id, _, err := f.AllocatePage()
	require.NoError(t, err)
	src := make([]byte, PageSize)
	src[100] = 7
	require.NoError(t, f.WritePage(id, src))

	g, err := OpenLocalFile(dir, "heap")
	require.NoError(t, err)
	require.Equal(t, uint32(1), g.NumPages())
	require.Equal(t, f.Name(), g.Name())

	dst := make([]byte, PageSize)
	require.NoError(t, g.ReadPage(id, dst))
	assert.Equal(t, byte(7), dst[100])

	require.NoError(t, g.Remove())
	assert.Equal(t, uint32(0), g.NumPages())
}

package bufferpool

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Dump(t *testing.T) {
	pool, file := newTestPool(t, 2, 1)

	_, err := pool.Fetch(file, 0)
	require.NoError(t, err)
	require.NoError(t, pool.Unpin(file, 0, true))

	var buf bytes.Buffer
	require.NoError(t, pool.Dump(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "FrameNo:0 file:testtable pageNo:0 valid:true dirty:true pinCnt:0 refbit:true", lines[0])
	assert.Equal(t, "FrameNo:1 file:- pageNo:0 valid:false dirty:false pinCnt:0 refbit:false", lines[1])
	assert.Equal(t, "Total Number of Valid Frames:1", lines[2])
	assert.Equal(t, "Pool size:16 KiB (2 frames of 8.0 KiB)", lines[3])

	require.NoError(t, pool.Close())
	require.ErrorIs(t, pool.Dump(&buf), ErrPoolClosed)
}

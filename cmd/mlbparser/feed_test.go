package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedScheduleSplitsLengthsAndRest(t *testing.T) {
	lengths, hasRest, err := parseFeedSchedule("10 25 rest")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 25}, lengths)
	assert.True(t, hasRest)
}

func TestParseFeedScheduleWithoutRest(t *testing.T) {
	lengths, hasRest, err := parseFeedSchedule("5 5 5")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5, 5}, lengths)
	assert.False(t, hasRest)
}

func TestParseFeedScheduleRejectsRestInMiddle(t *testing.T) {
	_, _, err := parseFeedSchedule("rest 10")
	assert.Error(t, err)
}

func TestParseFeedScheduleRejectsNonPositive(t *testing.T) {
	_, _, err := parseFeedSchedule("0 10")
	assert.Error(t, err)
}

func TestChunksForFollowsExplicitScheduleThenRest(t *testing.T) {
	data := []byte("0123456789abcdefghij")
	chunks, err := chunksFor(data, 64, "5 5 rest")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "01234", chunks[0])
	assert.Equal(t, "56789", chunks[1])
	assert.Equal(t, "abcdefghij", chunks[2])
}

func TestChunksForStopsWhenScheduleExhaustedWithoutRest(t *testing.T) {
	data := []byte("0123456789abcdefghij")
	chunks, err := chunksFor(data, 64, "5 5")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "56789", chunks[1])
}

func TestChunksForFixedSize(t *testing.T) {
	data := []byte("0123456789")
	chunks, err := chunksFor(data, 4, "")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "0123", chunks[0])
	assert.Equal(t, "4567", chunks[1])
	assert.Equal(t, "89", chunks[2])
}

func TestChunksForRejectsNonPositiveChunkBytes(t *testing.T) {
	_, err := chunksFor([]byte("abc"), 0, "")
	assert.Error(t, err)
}

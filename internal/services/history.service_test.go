package services

import (
	"fmt"
	"testing"

	"netwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, rs *RollingSeries, from, to int) {
	t.Helper()
	for i := from; i <= to; i++ {
		rs.Append(fmt.Sprintf("t%d", i), float64(i), float64(i*10))
	}
}

func timestamps(points []models.SeriesPoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Timestamp
	}
	return out
}

func assertParallel(t *testing.T, rs *RollingSeries) {
	t.Helper()
	assert.Len(t, rs.Snapshot(), rs.Len())
	assert.Equal(t, len(rs.timestamps), len(rs.uploads))
	assert.Equal(t, len(rs.timestamps), len(rs.downloads))
	assert.LessOrEqual(t, rs.Len(), rs.Capacity())
}

func TestNewRollingSeries_RejectsZeroCapacity(t *testing.T) {
	_, err := NewRollingSeries(0)
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestRollingSeries_AppendBelowCapacity(t *testing.T) {
	rs, err := NewRollingSeries(5)
	require.NoError(t, err)

	fill(t, rs, 1, 3)
	assert.Equal(t, 3, rs.Len())
	assert.Equal(t, []models.SeriesPoint{
		{Timestamp: "t1", UploadRate: 1, DownloadRate: 10},
		{Timestamp: "t2", UploadRate: 2, DownloadRate: 20},
		{Timestamp: "t3", UploadRate: 3, DownloadRate: 30},
	}, rs.Snapshot())
}

func TestRollingSeries_Eviction(t *testing.T) {
	for _, k := range []int{1, 2, 7, 10, 23} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			const capacity = 10
			rs, err := NewRollingSeries(capacity)
			require.NoError(t, err)

			fill(t, rs, 1, capacity+k)

			require.Equal(t, capacity, rs.Len())
			var want []string
			for i := k + 1; i <= capacity+k; i++ {
				want = append(want, fmt.Sprintf("t%d", i))
			}
			assert.Equal(t, want, timestamps(rs.Snapshot()))
			assertParallel(t, rs)
		})
	}
}

func TestRollingSeries_ShrinkKeepsNewestSuffix(t *testing.T) {
	rs, err := NewRollingSeries(10)
	require.NoError(t, err)
	fill(t, rs, 1, 10)

	require.NoError(t, rs.SetCapacity(5))

	assert.Equal(t, 5, rs.Capacity())
	assert.Equal(t, []string{"t6", "t7", "t8", "t9", "t10"}, timestamps(rs.Snapshot()))
	assert.Equal(t, models.SeriesPoint{Timestamp: "t6", UploadRate: 6, DownloadRate: 60}, rs.Snapshot()[0])
	assert.Equal(t, models.SeriesPoint{Timestamp: "t10", UploadRate: 10, DownloadRate: 100}, rs.Snapshot()[4])
}

func TestRollingSeries_ShrinkAfterWrap(t *testing.T) {
	rs, err := NewRollingSeries(4)
	require.NoError(t, err)
	fill(t, rs, 1, 7) // head is mid-buffer

	require.NoError(t, rs.SetCapacity(2))
	assert.Equal(t, []string{"t6", "t7"}, timestamps(rs.Snapshot()))

	fill(t, rs, 8, 8)
	assert.Equal(t, []string{"t7", "t8"}, timestamps(rs.Snapshot()))
}

func TestRollingSeries_GrowKeepsEverything(t *testing.T) {
	rs, err := NewRollingSeries(3)
	require.NoError(t, err)
	fill(t, rs, 1, 5)

	require.NoError(t, rs.SetCapacity(6))
	assert.Equal(t, []string{"t3", "t4", "t5"}, timestamps(rs.Snapshot()))

	fill(t, rs, 6, 9)
	assert.Equal(t, []string{"t4", "t5", "t6", "t7", "t8", "t9"}, timestamps(rs.Snapshot()))
}

func TestRollingSeries_SetCapacityRejectsZero(t *testing.T) {
	rs, err := NewRollingSeries(3)
	require.NoError(t, err)
	fill(t, rs, 1, 3)

	require.ErrorIs(t, rs.SetCapacity(0), ErrInvalidCapacity)
	assert.Equal(t, 3, rs.Capacity())
	assert.Equal(t, []string{"t1", "t2", "t3"}, timestamps(rs.Snapshot()))
}

func TestRollingSeries_ParallelInvariant(t *testing.T) {
	rs, err := NewRollingSeries(10)
	require.NoError(t, err)

	ops := []func(){
		func() { fill(t, rs, 1, 4) },
		func() { require.NoError(t, rs.SetCapacity(3)) },
		func() { fill(t, rs, 5, 12) },
		func() { require.NoError(t, rs.SetCapacity(20)) },
		func() { fill(t, rs, 13, 40) },
		func() { require.NoError(t, rs.SetCapacity(1)) },
		func() { fill(t, rs, 41, 42) },
	}
	for _, op := range ops {
		op()
		assertParallel(t, rs)
	}
	assert.Equal(t, []string{"t42"}, timestamps(rs.Snapshot()))
}

func TestRollingSeries_SnapshotIsIdempotentCopy(t *testing.T) {
	rs, err := NewRollingSeries(3)
	require.NoError(t, err)
	fill(t, rs, 1, 4)

	first := rs.Snapshot()
	second := rs.Snapshot()
	assert.Equal(t, first, second)

	first[0].Timestamp = "mutated"
	first[2].UploadRate = -1
	assert.Equal(t, second, rs.Snapshot())
}

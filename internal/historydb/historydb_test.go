package historydb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func Test_Record_ThenByMatchID_RoundTrips(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	recorded, err := d.Record(ctx, "match1", "robot", 100, 12)
	require.NoError(t, err)

	got, err := d.ByMatchID(ctx, "match1")
	require.NoError(t, err)
	assert.Equal(t, recorded.MatchID, got.MatchID)
	assert.Equal(t, recorded.Role, got.Role)
	assert.Equal(t, 100, got.Goal)
	assert.Equal(t, 12, got.PlyCount)
}

func Test_ByMatchID_UnknownIsNotFound(t *testing.T) {
	d := openTestDB(t)
	_, err := d.ByMatchID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_Recent_OrdersNewestFirst(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	_, err := d.Record(ctx, "m1", "robot", 0, 5)
	require.NoError(t, err)
	_, err = d.Record(ctx, "m2", "robot", 100, 8)
	require.NoError(t, err)

	entries, err := d.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "m2", entries[0].MatchID)
	assert.Equal(t, "m1", entries[1].MatchID)
}

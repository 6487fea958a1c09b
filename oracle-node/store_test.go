package orn

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/bls-oracle/common/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), logging.GetNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreScanCursor(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.GetScanCursor()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.PutScanCursor(128))
	cursor, ok, err := store.GetScanCursor()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(128), cursor)
}

func TestStoreHeaders(t *testing.T) {
	store := newTestStore(t)

	records := []HeaderRecord{
		{Hash: common.BytesToHash([]byte{1}), Number: 1, Timestamp: 100},
		{Hash: common.BytesToHash([]byte{2}), ParentHash: common.BytesToHash([]byte{1}), Number: 2, Timestamp: 112},
		{Hash: common.BytesToHash([]byte{3}), ParentHash: common.BytesToHash([]byte{2}), Number: 3, Timestamp: 124},
	}
	require.NoError(t, store.PutHeaders(records))

	header, err := store.GetHeader(2)
	require.NoError(t, err)
	require.NotNil(t, header)
	assert.Equal(t, records[1], *header)

	missing, err := store.GetHeader(9)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Big-endian keys keep the range in height order.
	inRange, err := store.HeadersInRange(2, 3)
	require.NoError(t, err)
	assert.Equal(t, records[1:], inRange)
}

func TestStoreEvents(t *testing.T) {
	store := newTestStore(t)

	events := []EventRecord{
		{BlockHeight: 3, TxHash: common.BytesToHash([]byte{1}), LogIndex: 0, EventSig: MemberAddedEventSig},
		{BlockHeight: 3, TxHash: common.BytesToHash([]byte{1}), LogIndex: 1, EventSig: MemberRemovedEventSig},
	}
	require.NoError(t, store.PutEvents(events))

	// Same tx, distinct log index: two distinct records.
	count, err := store.EventCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := store.GetEvent(events[1].TxHash, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, MemberRemovedEventSig, got.EventSig)

	// Re-persisting is an overwrite, not a duplicate.
	require.NoError(t, store.PutEvents(events))
	count, err = store.EventCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStoreRoster(t *testing.T) {
	store := newTestStore(t)
	operator := common.HexToAddress("0x00000000000000000000000000000000000000a1")

	entry, err := store.GetRosterEntry(operator)
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, store.PutRosterEntry(&RosterEntry{Address: operator, HasKey: true, UpdatedAt: 7}))
	entry, err = store.GetRosterEntry(operator)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.HasKey)

	roster, err := store.ListRoster()
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, operator, roster[0].Address)
}

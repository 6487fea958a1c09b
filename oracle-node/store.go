package orn

import (
	"encoding/binary"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Layr-Labs/bls-oracle/common/logging"
)

// Key prefixes of the mirror store. The synchronizer is the only writer of
// the header, event and cursor spaces; the processor is the only writer of
// the roster and applied spaces. That convention stands in for locking.
var (
	headerPrefix  = []byte("h/")
	eventPrefix   = []byte("e/")
	rosterPrefix  = []byte("r/")
	appliedPrefix = []byte("a/")
	cursorKey     = []byte("c/scan-cursor")
)

func headerKey(number uint64) []byte {
	key := make([]byte, len(headerPrefix)+8)
	copy(key, headerPrefix)
	binary.BigEndian.PutUint64(key[len(headerPrefix):], number)
	return key
}

func eventKey(prefix []byte, txHash common.Hash, logIndex uint) []byte {
	key := make([]byte, len(prefix)+32+4)
	copy(key, prefix)
	copy(key[len(prefix):], txHash.Bytes())
	binary.BigEndian.PutUint32(key[len(prefix)+32:], uint32(logIndex))
	return key
}

func rosterKey(operator common.Address) []byte {
	return append(append([]byte{}, rosterPrefix...), operator.Bytes()...)
}

// Store persists the mirrored chain state: headers, registry events, the
// scan cursor and the operator roster.
type Store struct {
	db     *LevelDBStore
	logger *logging.Logger
}

func NewStore(path string, logger *logging.Logger) (*Store, error) {
	db, err := NewLevelDBStore(path)
	if err != nil {
		logger.Error().Err(err).Msg("Could not create leveldb database")
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetScanCursor returns the last fully persisted block height. ok is false
// when no scan has completed yet.
func (s *Store) GetScanCursor() (cursor uint64, ok bool, err error) {
	data, err := s.db.Get(cursorKey)
	if err != nil {
		if IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return binary.BigEndian.Uint64(data), true, nil
}

func (s *Store) PutScanCursor(cursor uint64) error {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, cursor)
	return s.db.Put(cursorKey, data)
}

func (s *Store) PutHeaders(headers []HeaderRecord) error {
	keys := make([][]byte, 0, len(headers))
	values := make([][]byte, 0, len(headers))
	for _, h := range headers {
		data, err := json.Marshal(h)
		if err != nil {
			return err
		}
		keys = append(keys, headerKey(h.Number))
		values = append(values, data)
	}
	return s.db.WriteBatch(keys, values)
}

func (s *Store) GetHeader(number uint64) (*HeaderRecord, error) {
	data, err := s.db.Get(headerKey(number))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var h HeaderRecord
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// HeadersInRange returns the mirrored headers with from <= number <= to,
// in ascending order. For audit tooling.
func (s *Store) HeadersInRange(from, to uint64) ([]HeaderRecord, error) {
	out := make([]HeaderRecord, 0)
	it := s.db.NewIterator(headerPrefix)
	defer it.Release()
	for it.Next() {
		var h HeaderRecord
		if err := json.Unmarshal(it.Value(), &h); err != nil {
			return nil, err
		}
		if h.Number < from || h.Number > to {
			continue
		}
		out = append(out, h)
	}
	return out, it.Error()
}

func (s *Store) PutEvents(events []EventRecord) error {
	keys := make([][]byte, 0, len(events))
	values := make([][]byte, 0, len(events))
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		keys = append(keys, eventKey(eventPrefix, e.TxHash, e.LogIndex))
		values = append(values, data)
	}
	return s.db.WriteBatch(keys, values)
}

func (s *Store) GetEvent(txHash common.Hash, logIndex uint) (*EventRecord, error) {
	return s.getEvent(eventPrefix, txHash, logIndex)
}

func (s *Store) getEvent(prefix []byte, txHash common.Hash, logIndex uint) (*EventRecord, error) {
	data, err := s.db.Get(eventKey(prefix, txHash, logIndex))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var e EventRecord
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) EventCount() (int, error) {
	return s.countPrefix(eventPrefix)
}

// PutAppliedEvent stores the raw event a processor handler consumed, keyed
// by txHash+logIndex so redelivery overwrites.
func (s *Store) PutAppliedEvent(e EventRecord) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Put(eventKey(appliedPrefix, e.TxHash, e.LogIndex), data)
}

func (s *Store) GetAppliedEvent(txHash common.Hash, logIndex uint) (*EventRecord, error) {
	return s.getEvent(appliedPrefix, txHash, logIndex)
}

func (s *Store) AppliedEventCount() (int, error) {
	return s.countPrefix(appliedPrefix)
}

func (s *Store) PutRosterEntry(entry *RosterEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.db.Put(rosterKey(entry.Address), data)
}

// GetRosterEntry returns nil without error when the operator is unknown.
func (s *Store) GetRosterEntry(operator common.Address) (*RosterEntry, error) {
	data, err := s.db.Get(rosterKey(operator))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var entry RosterEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) ListRoster() ([]RosterEntry, error) {
	out := make([]RosterEntry, 0)
	it := s.db.NewIterator(rosterPrefix)
	defer it.Release()
	for it.Next() {
		var entry RosterEntry
		if err := json.Unmarshal(it.Value(), &entry); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, it.Error()
}

func (s *Store) countPrefix(prefix []byte) (int, error) {
	it := s.db.NewIterator(prefix)
	defer it.Release()
	count := 0
	for it.Next() {
		count++
	}
	return count, it.Error()
}

package orn

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Layr-Labs/bls-oracle/common/chain"
	"github.com/Layr-Labs/bls-oracle/common/logging"
)

// Synchronizer ingests registry events from the chain into the mirror
// store, gap-free and resumable. Each poll tick runs one pass of
// IDLE -> FETCH_HEADERS -> FILTER_LOGS -> PERSIST. Recoverable trouble (RPC
// errors, reorged or inconsistent batches) discards the batch and retries
// the identical range on the next tick; store write failures escalate
// through the fatal callback.
type Synchronizer struct {
	chain   chain.Reader
	store   *Store
	out     chan<- EventRecord
	metrics *Metrics
	logger  *logging.Logger
	fatal   func(error)

	watched       []common.Address
	genesisHeight uint64
	blockStep     uint64
	confirmations uint64
	pollInterval  time.Duration
}

func NewSynchronizer(
	config *Config,
	chainReader chain.Reader,
	store *Store,
	out chan<- EventRecord,
	metrics *Metrics,
	fatal func(error),
	logger *logging.Logger,
) *Synchronizer {
	return &Synchronizer{
		chain:         chainReader,
		store:         store,
		out:           out,
		metrics:       metrics,
		logger:        logger,
		fatal:         fatal,
		watched:       []common.Address{config.RegistryAddress},
		genesisHeight: config.GenesisHeight,
		blockStep:     config.BlockStep,
		confirmations: config.Confirmations,
		pollInterval:  config.PollInterval,
	}
}

// Start launches the poll loop. The loop checks for cancellation at the top
// of every iteration and exits when ctx is done.
func (s *Synchronizer) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		s.logger.Info().
			Uint64("genesisHeight", s.genesisHeight).
			Uint64("blockStep", s.blockStep).
			Dur("pollInterval", s.pollInterval).
			Msg("Synchronizer started")

		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("Synchronizer stopped")
				return
			case <-ticker.C:
			}

			if err := s.Poll(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Batch discarded, retrying next tick")
			}
		}
	}()
}

// Poll runs a single synchronization pass.
func (s *Synchronizer) Poll(ctx context.Context) error {
	// FETCH_HEADERS
	from, err := s.resumeHeight()
	if err != nil {
		s.fatal(err)
		return err
	}

	headers, err := s.fetchHeaders(ctx, from)
	if err != nil {
		return err
	}
	if len(headers) == 0 {
		// Caught up; not an error.
		return nil
	}
	to := headers[len(headers)-1].Number.Uint64()

	// FILTER_LOGS
	logs, err := s.filterLogs(ctx, from, to, headers)
	if err != nil {
		return err
	}

	// PERSIST
	return s.persist(ctx, headers, logs, to)
}

func (s *Synchronizer) resumeHeight() (uint64, error) {
	cursor, ok, err := s.store.GetScanCursor()
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.genesisHeight, nil
	}
	return cursor + 1, nil
}

// fetchHeaders pulls up to blockStep canonical headers starting at from,
// staying confirmations blocks behind the head. Zero new headers is a no-op.
func (s *Synchronizer) fetchHeaders(ctx context.Context, from uint64) ([]*types.Header, error) {
	latest, err := s.chain.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	if latest < s.confirmations {
		return nil, nil
	}
	head := latest - s.confirmations
	if head < from {
		return nil, nil
	}

	to := head
	if maxTo := from + s.blockStep - 1; to > maxTo {
		to = maxTo
	}

	headers := make([]*types.Header, 0, to-from+1)
	for number := from; number <= to; number++ {
		header, err := s.chain.HeaderByNumber(ctx, new(big.Int).SetUint64(number))
		if err != nil {
			return nil, err
		}
		if len(headers) > 0 && header.ParentHash != headers[len(headers)-1].Hash() {
			return nil, ErrBatchDiscontinuity
		}
		headers = append(headers, header)
	}
	return headers, nil
}

// filterLogs runs one bounded-range query over the watched addresses and
// revalidates the batch tail afterwards: if the chain's header at the range
// end no longer matches the fetched tail, the provider answered from a
// different chain view and the whole batch is discarded.
func (s *Synchronizer) filterLogs(ctx context.Context, from, to uint64, headers []*types.Header) ([]types.Log, error) {
	logs, err := s.chain.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: s.watched,
	})
	if err != nil {
		return nil, err
	}

	tail := headers[len(headers)-1]
	check, err := s.chain.HeaderByNumber(ctx, new(big.Int).SetUint64(to))
	if err != nil {
		return nil, err
	}
	if check.Number.Uint64() != tail.Number.Uint64() || check.Hash() != tail.Hash() {
		s.metrics.BatchesDiscarded.Inc()
		return nil, ErrBatchTailMismatch
	}
	return logs, nil
}

// persist enqueues the batch's events, then writes headers, then events,
// and only then advances the cursor — in that order, so a crash never
// leaves the cursor ahead of persisted data.
func (s *Synchronizer) persist(ctx context.Context, headers []*types.Header, logs []types.Log, to uint64) error {
	byNumber := make(map[uint64]*types.Header, len(headers))
	headerRecords := make([]HeaderRecord, 0, len(headers))
	for _, h := range headers {
		byNumber[h.Number.Uint64()] = h
		headerRecords = append(headerRecords, newHeaderRecord(h))
	}

	eventRecords := make([]EventRecord, 0, len(logs))
	for _, lg := range logs {
		header, ok := byNumber[lg.BlockNumber]
		if !ok {
			return ErrLogOutsideBatch
		}
		eventRecords = append(eventRecords, newEventRecord(lg, header.Time))
	}

	// A slow consumer blocks here, throttling fetch rate to processing rate.
	for _, e := range eventRecords {
		select {
		case s.out <- e:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := s.store.PutHeaders(headerRecords); err != nil {
		s.fatal(err)
		return err
	}
	if err := s.store.PutEvents(eventRecords); err != nil {
		s.fatal(err)
		return err
	}
	if err := s.store.PutScanCursor(to); err != nil {
		s.fatal(err)
		return err
	}

	s.metrics.SyncedHeight.Set(float64(to))
	s.metrics.BatchesIngested.Inc()
	s.metrics.EventsIngested.Add(float64(len(eventRecords)))

	s.logger.Debug().
		Uint64("from", headerRecords[0].Number).
		Uint64("to", to).
		Int("events", len(eventRecords)).
		Msg("Batch persisted")
	return nil
}

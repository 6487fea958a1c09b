package orn

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Layr-Labs/bls-oracle/common/logging"
)

// Processor is the single consumer of the synchronizer's event channel. It
// dispatches each event by signature to an idempotent handler that maintains
// the mirrored operator roster. A handler error is logged and skipped; the
// loop never halts for one bad event.
type Processor struct {
	store   *Store
	in      <-chan EventRecord
	metrics *Metrics
	logger  *logging.Logger
}

func NewProcessor(store *Store, in <-chan EventRecord, metrics *Metrics, logger *logging.Logger) *Processor {
	return &Processor{
		store:   store,
		in:      in,
		metrics: metrics,
		logger:  logger,
	}
}

func (p *Processor) Start(ctx context.Context) {
	go func() {
		p.logger.Info().Msg("Processor started")
		for {
			select {
			case <-ctx.Done():
				p.logger.Info().Msg("Processor stopped")
				return
			case event := <-p.in:
				if err := p.Process(event); err != nil {
					p.metrics.HandlerErrors.Inc()
					p.logger.Warn().Err(err).
						Str("txHash", event.TxHash.Hex()).
						Uint("logIndex", event.LogIndex).
						Str("eventSig", event.EventSig.Hex()).
						Msg("Event handler failed, skipping")
				} else {
					p.metrics.EventsProcessed.Inc()
				}
			}
		}
	}()
}

// Process applies one event to the roster. Safe to call repeatedly with the
// same event: handlers read-modify-write keyed records and the raw event is
// stored under txHash+logIndex, so redelivery overwrites.
func (p *Processor) Process(event EventRecord) error {
	switch event.EventSig {
	case KeyRegisteredEventSig:
		return p.handleKeyRegistered(event)
	case MemberAddedEventSig:
		return p.handleMembership(event, true)
	case MemberRemovedEventSig:
		return p.handleMembership(event, false)
	default:
		return ErrUnknownEventSignature
	}
}

func (p *Processor) handleKeyRegistered(event EventRecord) error {
	operator, err := operatorFromTopics(event.Topics)
	if err != nil {
		return err
	}
	if len(event.Topics) < 3 || len(event.Payload) != keyRegisteredPayloadLen {
		return ErrMalformedEvent
	}

	entry, err := p.rosterEntry(operator)
	if err != nil {
		return err
	}
	entry.PubkeyG1 = append([]byte{}, event.Payload[:64]...)
	entry.PubkeyG2 = append([]byte{}, event.Payload[64:]...)
	entry.PubkeyHash = event.Topics[2]
	entry.HasKey = true
	entry.UpdatedAt = event.BlockHeight

	return p.commit(entry, event)
}

func (p *Processor) handleMembership(event EventRecord, active bool) error {
	operator, err := operatorFromTopics(event.Topics)
	if err != nil {
		return err
	}

	entry, err := p.rosterEntry(operator)
	if err != nil {
		return err
	}
	entry.IsActive = active
	entry.UpdatedAt = event.BlockHeight

	if err := p.commit(entry, event); err != nil {
		return err
	}
	return p.refreshCommitteeSize()
}

func (p *Processor) rosterEntry(operator common.Address) (*RosterEntry, error) {
	entry, err := p.store.GetRosterEntry(operator)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = &RosterEntry{Address: operator}
	}
	return entry, nil
}

func (p *Processor) commit(entry *RosterEntry, event EventRecord) error {
	if err := p.store.PutRosterEntry(entry); err != nil {
		return err
	}
	return p.store.PutAppliedEvent(event)
}

// refreshCommitteeSize recomputes the mirrored active-member gauge from the
// roster, which keeps the metric correct under event redelivery.
func (p *Processor) refreshCommitteeSize() error {
	roster, err := p.store.ListRoster()
	if err != nil {
		return err
	}
	active := 0
	for _, entry := range roster {
		if entry.IsActive {
			active++
		}
	}
	p.metrics.CommitteeSize.Set(float64(active))
	return nil
}

package registry

import (
	"github.com/ethereum/go-ethereum/common"

	interfaceOR "github.com/Layr-Labs/bls-oracle/common/interfaces/interfaceOR"
	"github.com/Layr-Labs/bls-oracle/common/logging"
)

// CommitteeManager admits and removes committee members. It is the only
// identity allowed to drive the registry's committee-mutation capability,
// and every admit/remove updates the aggregate key ledger in the same call.
type CommitteeManager struct {
	manager   common.Address
	committee interfaceOR.CommitteeMutator
	ledger    *AggregateKeyLedger
	blocks    interfaceOR.BlockSource
	logger    *logging.Logger
}

func NewCommitteeManager(
	manager common.Address,
	committee interfaceOR.CommitteeMutator,
	ledger *AggregateKeyLedger,
	blocks interfaceOR.BlockSource,
	logger *logging.Logger,
) *CommitteeManager {
	return &CommitteeManager{
		manager:   manager,
		committee: committee,
		ledger:    ledger,
		blocks:    blocks,
		logger:    logger.Sublogger("Committee"),
	}
}

// AddOperator admits a registered, inactive operator: its G1 key is added to
// the aggregate and the member count incremented. Atomic: a precondition
// failure leaves no partial mutation.
func (m *CommitteeManager) AddOperator(caller, operator common.Address) error {
	if caller != m.manager {
		return interfaceOR.ErrNotCommitteeManager
	}
	pubkey, err := m.committee.ActivateOperator(operator)
	if err != nil {
		return err
	}
	m.ledger.AddKey(pubkey, m.blocks.CurrentBlock())
	m.logger.Info().Str("operator", operator.Hex()).Msg("Operator added to committee")
	return nil
}

// RemoveOperator evicts an active operator: its G1 key is subtracted from
// the aggregate and the member count decremented.
func (m *CommitteeManager) RemoveOperator(caller, operator common.Address) error {
	if caller != m.manager {
		return interfaceOR.ErrNotCommitteeManager
	}
	pubkey, err := m.committee.DeactivateOperator(operator)
	if err != nil {
		return err
	}
	m.ledger.SubtractKey(pubkey, m.blocks.CurrentBlock())
	m.logger.Info().Str("operator", operator.Hex()).Msg("Operator removed from committee")
	return nil
}

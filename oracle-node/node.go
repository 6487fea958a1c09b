package orn

import (
	"context"
	"fmt"
	"os"

	"github.com/Layr-Labs/bls-oracle/common/chain"
	"github.com/Layr-Labs/bls-oracle/common/logging"
)

// OracleNode wires the chain synchronizer and the event processor around a
// shared mirror store and a bounded event channel.
type OracleNode struct {
	config  *Config
	logger  *logging.Logger
	metrics *Metrics
	store   *Store

	chainClient  *chain.Client
	synchronizer *Synchronizer
	processor    *Processor
	events       chan EventRecord

	ctx    context.Context
	cancel context.CancelFunc
}

// NewOracleNode creates a new node with the provided config.
func NewOracleNode(config *Config, logger *logging.Logger) (*OracleNode, error) {
	// Make sure the db folder exists
	err := os.MkdirAll(config.DbPath, os.ModePerm)
	if err != nil {
		logger.Error().Err(err).Msgf("Could not create db directory: %v", config.DbPath)
		return nil, err
	}

	chainLogger := logger.Sublogger("Chain")
	chainClient, err := chain.NewClient(config.ChainClientConfig, chainLogger)
	if err != nil {
		logger.Error().Err(err).Msg("Could not create chain client")
		return nil, err
	}

	metricsLogger := logger.Sublogger("Metrics")
	metrics := NewMetrics(metricsLogger)

	storeLogger := logger.Sublogger("Store")
	store, err := NewStore(config.DbPath+"/mirror", storeLogger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create new store")
		return nil, err
	}

	node := &OracleNode{
		config:      config,
		logger:      logger.Sublogger("Node"),
		metrics:     metrics,
		store:       store,
		chainClient: chainClient,
		events:      make(chan EventRecord, config.EventChannelSize),
	}

	node.processor = NewProcessor(store, node.events, metrics, logger.Sublogger("Processor"))
	node.synchronizer = NewSynchronizer(
		config,
		chainClient,
		store,
		node.events,
		metrics,
		node.shutdown,
		logger.Sublogger("Synchronizer"),
	)

	return node, nil
}

// Start launches the processor and synchronizer loops and, if enabled, the
// metrics endpoint.
func (n *OracleNode) Start(ctx context.Context) error {
	n.ctx, n.cancel = context.WithCancel(ctx)

	if n.config.EnableMetrics {
		httpSocket := fmt.Sprintf(":%s", n.config.MetricsPort)
		n.metrics.Start(httpSocket)
		n.logger.Info().Msgf("Enabled metrics with socket: %v", httpSocket)
	}

	n.processor.Start(n.ctx)
	n.synchronizer.Start(n.ctx)

	n.logger.Info().
		Str("registry", n.config.RegistryAddress.Hex()).
		Msg("Oracle node started")
	return nil
}

// Done signals when the node has shut down, either from Stop or from a
// fatal error escalation.
func (n *OracleNode) Done() <-chan struct{} {
	return n.ctx.Done()
}

func (n *OracleNode) Stop() {
	if n.cancel != nil {
		n.cancel()
	}
	if err := n.store.Close(); err != nil {
		n.logger.Error().Err(err).Msg("Could not close store cleanly")
	}
}

// Store exposes the mirror store for off-chain tooling.
func (n *OracleNode) Store() *Store {
	return n.store
}

// shutdown is the fatal-error escalation path: the whole service stops, the
// failed batch is never partially persisted.
func (n *OracleNode) shutdown(err error) {
	n.logger.Error().Err(err).Msg("Fatal error, shutting down service")
	if n.cancel != nil {
		n.cancel()
	}
}

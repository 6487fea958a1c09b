package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/Layr-Labs/bls-oracle/common/logging"
)

// Reader is the chain access surface the synchronizer depends on. Tests
// substitute a mock; production uses the ethclient-backed Client below.
type Reader interface {
	BlockNumber(ctx context.Context) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
}

type Client struct {
	RpcUrl      string
	ChainClient *ethclient.Client
	Logger      *logging.Logger
}

func NewClient(config ClientConfig, logger *logging.Logger) (*Client, error) {
	chainClient, err := ethclient.Dial(config.RpcUrl)
	if err != nil {
		logger.Error().Err(err).Msg("Error. Cannot connect to provider")
		return nil, err
	}

	return &Client{
		RpcUrl:      config.RpcUrl,
		ChainClient: chainClient,
		Logger:      logger,
	}, nil
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.ChainClient.BlockNumber(ctx)
}

func (c *Client) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return c.ChainClient.HeaderByNumber(ctx, number)
}

func (c *Client) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return c.ChainClient.FilterLogs(ctx, q)
}

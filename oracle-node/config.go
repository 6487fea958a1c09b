package orn

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Layr-Labs/bls-oracle/common/chain"
	"github.com/Layr-Labs/bls-oracle/common/logging"
	"github.com/Layr-Labs/bls-oracle/oracle-node/flags"
	"github.com/urfave/cli"
)

// Config contains all of the configuration information for an oracle node.
type Config struct {
	DbPath           string
	RegistryAddress  common.Address
	GenesisHeight    uint64
	BlockStep        uint64
	Confirmations    uint64
	PollInterval     time.Duration
	EventChannelSize int
	EnableMetrics    bool
	MetricsPort      string

	ChainClientConfig chain.ClientConfig
	LoggingConfig     logging.Config
}

// NewConfig parses the Config from the provided flags or environment variables.
func NewConfig(ctx *cli.Context) (*Config, error) {
	pollInterval, err := time.ParseDuration(ctx.GlobalString(flags.PollIntervalFlag.Name))
	if err != nil {
		return &Config{}, err
	}

	return &Config{
		DbPath:            ctx.GlobalString(flags.DbPathFlag.Name),
		RegistryAddress:   common.HexToAddress(ctx.GlobalString(flags.RegistryAddressFlag.Name)),
		GenesisHeight:     ctx.GlobalUint64(flags.GenesisHeightFlag.Name),
		BlockStep:         ctx.GlobalUint64(flags.BlockStepFlag.Name),
		Confirmations:     ctx.GlobalUint64(flags.ConfirmationsFlag.Name),
		PollInterval:      pollInterval,
		EventChannelSize:  ctx.GlobalInt(flags.EventChannelSizeFlag.Name),
		EnableMetrics:     ctx.GlobalBool(flags.EnableMetricsFlag.Name),
		MetricsPort:       ctx.GlobalString(flags.MetricsPortFlag.Name),
		ChainClientConfig: chain.ReadCLIConfig(ctx),
		LoggingConfig:     logging.ReadCLIConfig(ctx),
	}, nil
}

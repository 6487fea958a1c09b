package flags

import (
	"github.com/urfave/cli"

	"github.com/Layr-Labs/bls-oracle/common"
	"github.com/Layr-Labs/bls-oracle/common/chain"
	"github.com/Layr-Labs/bls-oracle/common/logging"
)

const envVarPrefix = "ORACLE_NODE"

var (
	/* Required Flags */

	DbPathFlag = cli.StringFlag{
		Name:     "db-path",
		Usage:    "Path for level db",
		Required: true,
		EnvVar:   common.PrefixEnvVar(envVarPrefix, "DB_PATH"),
	}
	RegistryAddressFlag = cli.StringFlag{
		Name:     "registry-address",
		Usage:    "Address of the public key registry contract to watch",
		Required: true,
		EnvVar:   common.PrefixEnvVar(envVarPrefix, "REGISTRY_ADDRESS"),
	}
	GenesisHeightFlag = cli.Uint64Flag{
		Name:     "genesis-height",
		Usage:    "Block height to start scanning from when no cursor is persisted",
		Required: true,
		EnvVar:   common.PrefixEnvVar(envVarPrefix, "GENESIS_HEIGHT"),
	}

	/* Optional Flags */

	BlockStepFlag = cli.Uint64Flag{
		Name:   "block-step",
		Usage:  "Maximum number of headers ingested per poll",
		Value:  32,
		EnvVar: common.PrefixEnvVar(envVarPrefix, "BLOCK_STEP"),
	}
	ConfirmationsFlag = cli.Uint64Flag{
		Name:   "confirmations",
		Usage:  "Number of blocks to stay behind the chain head",
		Value:  6,
		EnvVar: common.PrefixEnvVar(envVarPrefix, "CONFIRMATIONS"),
	}
	PollIntervalFlag = cli.StringFlag{
		Name:   "poll-interval",
		Usage:  "Interval between synchronizer polls, also the retry interval",
		Value:  "12s",
		EnvVar: common.PrefixEnvVar(envVarPrefix, "POLL_INTERVAL"),
	}
	EventChannelSizeFlag = cli.IntFlag{
		Name:   "event-channel-size",
		Usage:  "Capacity of the bounded synchronizer-to-processor channel",
		Value:  256,
		EnvVar: common.PrefixEnvVar(envVarPrefix, "EVENT_CHANNEL_SIZE"),
	}
	EnableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		Usage:  "enable prometheus to serve metrics collection",
		EnvVar: common.PrefixEnvVar(envVarPrefix, "ENABLE_METRICS"),
	}
	MetricsPortFlag = cli.StringFlag{
		Name:   "metrics-port",
		Usage:  "Port at which node listens for metrics calls",
		Value:  "9091",
		EnvVar: common.PrefixEnvVar(envVarPrefix, "METRICS_PORT"),
	}
)

var requiredFlags = []cli.Flag{
	DbPathFlag,
	RegistryAddressFlag,
	GenesisHeightFlag,
}

var optionalFlags = []cli.Flag{
	BlockStepFlag,
	ConfirmationsFlag,
	PollIntervalFlag,
	EventChannelSizeFlag,
	EnableMetricsFlag,
	MetricsPortFlag,
}

// Flags contains the list of configuration options available to the binary.
var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
	Flags = append(Flags, chain.CLIFlags(envVarPrefix)...)
	Flags = append(Flags, logging.CLIFlags(envVarPrefix)...)
}

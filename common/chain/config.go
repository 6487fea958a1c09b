package chain

import (
	"github.com/urfave/cli"

	"github.com/Layr-Labs/bls-oracle/common"
)

var (
	RpcUrlFlagName  = "chain.rpc"
	ChainIdFlagName = "chain.chainId"
)

type ClientConfig struct {
	RpcUrl  string
	ChainId uint64
}

func CLIFlags(envPrefix string) []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:     RpcUrlFlagName,
			Usage:    "Chain rpc",
			Required: true,
			EnvVar:   common.PrefixEnvVar(envPrefix, "CHAIN_RPC"),
		},
		cli.Uint64Flag{
			Name:     ChainIdFlagName,
			Usage:    "Id of the chain",
			Required: true,
			EnvVar:   common.PrefixEnvVar(envPrefix, "CHAIN_ID"),
		},
	}
}

func ReadCLIConfig(ctx *cli.Context) ClientConfig {
	cfg := ClientConfig{}
	cfg.RpcUrl = ctx.GlobalString(RpcUrlFlagName)
	cfg.ChainId = ctx.GlobalUint64(ChainIdFlagName)
	return cfg
}

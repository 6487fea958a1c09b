package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/Layr-Labs/bls-oracle/common/logging"
	node "github.com/Layr-Labs/bls-oracle/oracle-node"
	"github.com/Layr-Labs/bls-oracle/oracle-node/flags"
)

var (
	Version   = ""
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "oracle-node"
	app.Usage = "BLS Oracle Node"
	app.Description = "Service mirroring the oracle committee registry from the chain into local state"

	app.Action = NodeMain
	err := app.Run(os.Args)
	if err != nil {
		log.Fatalln("Application failed.", "Message:", err)
	}
}

func NodeMain(ctx *cli.Context) error {
	log.Println("Initializing oracle node")
	config, err := node.NewConfig(ctx)
	if err != nil {
		return err
	}

	logger, err := logging.GetLogger(config.LoggingConfig)
	if err != nil {
		return err
	}

	orn, err := node.NewOracleNode(config, logger)
	if err != nil {
		return err
	}

	if err := orn.Start(context.Background()); err != nil {
		return err
	}
	defer orn.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case <-interrupt:
		logger.Info().Msg("Interrupt received, stopping")
	case <-orn.Done():
	}

	return nil
}

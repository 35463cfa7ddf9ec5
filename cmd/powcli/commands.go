package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/bsv-blockchain/teranode-consensus/chaincfg"
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/services/blockproducer"
	"github.com/bsv-blockchain/teranode-consensus/services/consensus"
	"github.com/bsv-blockchain/teranode-consensus/services/miner"
	"github.com/bsv-blockchain/teranode-consensus/settings"
	"github.com/bsv-blockchain/teranode-consensus/stores/blockchain"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
	"github.com/urfave/cli/v2"
)

// regtestGenesisTime fixes the genesis header, so blocks printed by mine can be
// checked with verify in a later run.
const regtestGenesisTime = 1700000000

func newApp(logger ulogger.Logger, tSettings *settings.Settings, out io.Writer) *cli.App {
	return &cli.App{
		Name:   "powcli",
		Usage:  "Mine and inspect proof-of-work block headers",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:  "mine",
				Usage: "Mine blocks on a fresh regtest chain and print them",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "blocks",
						Usage: "Number of blocks to mine",
						Value: 1,
					},
					&cli.StringFlag{
						Name:  "algo",
						Usage: "Proof-of-work algorithm, CUCKOO or SCRYPT",
						Value: tSettings.Mining.DefaultAlgo,
					},
				},
				Action: func(c *cli.Context) error {
					return mine(c.Context, logger, tSettings, c.App.Writer, c.Int("blocks"), model.AlgoFromString(c.String("algo")))
				},
			},
			{
				Name:      "verify",
				Usage:     "Verify a serialized header against a fresh regtest chain",
				ArgsUsage: "<header hex>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return errors.NewInvalidArgumentError("verify takes exactly one header")
					}

					return verify(c.Context, logger, tSettings, c.App.Writer, c.Args().Get(0))
				},
			},
			{
				Name:      "nonce",
				Usage:     "Patch a nonce into a serialized header",
				ArgsUsage: "<header hex> <nonce>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 2 {
						return errors.NewInvalidArgumentError("nonce takes a header and a nonce")
					}

					return patchNonce(c.App.Writer, c.Args().Get(0), c.Args().Get(1))
				},
			},
			{
				Name:      "algo",
				Usage:     "Decode an algorithm number",
				ArgsUsage: "<integer>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return errors.NewInvalidArgumentError("algo takes exactly one number")
					}

					return decodeAlgo(c.App.Writer, c.Args().Get(0))
				},
			},
		},
	}
}

// regtest returns a copy of tSettings on the regtest network with a chain
// holding only the genesis header.
func regtest(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings) (*settings.Settings, blockchain.Store, error) {
	regtestSettings := *tSettings
	regtestSettings.ChainCfgParams = chaincfg.RegressionNetParams.Copy()

	storeURL, err := url.Parse("memory://")
	if err != nil {
		return nil, nil, err
	}

	store, err := blockchain.NewStore(logger, storeURL)
	if err != nil {
		return nil, nil, err
	}

	genesis := &model.BlockHeader{
		Version:   1,
		Timestamp: regtestGenesisTime,
		Algo:      regtestSettings.ChainCfgParams.DefaultAlgo,
		Target:    regtestSettings.ChainCfgParams.GenesisTarget.Clone(),
	}

	if err = store.AddHeader(ctx, genesis); err != nil {
		return nil, nil, err
	}

	return &regtestSettings, store, nil
}

func mine(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings, out io.Writer, blocks int, algo model.Algo) error {
	if blocks < 1 {
		return errors.NewInvalidArgumentError("need at least one block to mine, got %d", blocks)
	}

	regtestSettings, store, err := regtest(ctx, logger, tSettings)
	if err != nil {
		return err
	}

	difficulty, err := consensus.NewDifficulty(logger, regtestSettings)
	if err != nil {
		return err
	}

	defer difficulty.Stop()

	c, err := consensus.New(logger, regtestSettings, difficulty)
	if err != nil {
		return err
	}

	m, err := miner.NewMiner(logger, regtestSettings)
	if err != nil {
		return err
	}

	defer m.Stop(ctx)

	producer := blockproducer.New(logger, regtestSettings, store, difficulty, c, m)

	headers, err := producer.MineBlocks(ctx, blocks, algo)
	if err != nil {
		return err
	}

	for _, header := range headers {
		_, _ = fmt.Fprintf(out, "%d %s %s nonce=%d\n", header.Height, header.Hash(), header.Algo, header.Nonce)
		_, _ = fmt.Fprintf(out, "%x\n", header.Bytes())
	}

	return nil
}

func verify(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings, out io.Writer, headerHex string) error {
	header, err := model.NewBlockHeaderFromString(headerHex)
	if err != nil {
		return err
	}

	regtestSettings, store, err := regtest(ctx, logger, tSettings)
	if err != nil {
		return err
	}

	difficulty, err := consensus.NewDifficulty(logger, regtestSettings)
	if err != nil {
		return err
	}

	defer difficulty.Stop()

	pow, err := consensus.NewProofOfWork(logger, regtestSettings, difficulty)
	if err != nil {
		return err
	}

	if err = pow.VerifyHeader(ctx, store, header); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "valid %s proof for %s\n", header.Algo, header.Hash())

	return nil
}

func patchNonce(out io.Writer, headerHex, nonceArg string) error {
	header, err := hex.DecodeString(headerHex)
	if err != nil {
		return errors.NewInvalidArgumentError("invalid header hex", err)
	}

	if len(header) < model.NonceSize {
		return errors.NewInvalidArgumentError("header of %d bytes has no nonce slot", len(header))
	}

	nonce, err := strconv.ParseUint(nonceArg, 10, 32)
	if err != nil {
		return errors.NewInvalidArgumentError("invalid nonce %q", nonceArg, err)
	}

	_, _ = fmt.Fprintf(out, "%x\n", model.SetHeaderNonce(header, uint32(nonce)))

	return nil
}

func decodeAlgo(out io.Writer, arg string) error {
	value, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return errors.NewInvalidArgumentError("invalid algorithm number %q", arg, err)
	}

	algo := model.AlgoFromUint32(uint32(value))

	_, _ = fmt.Fprintf(out, "%s (%d)\n", algo, algo.Uint32())

	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/anyswap/stellar-sdk-go/client"
	"github.com/anyswap/stellar-sdk-go/cmd/utils"
	"github.com/anyswap/stellar-sdk-go/data"
	"github.com/anyswap/stellar-sdk-go/log"
	"github.com/urfave/cli/v2"
)

var (
	submitCommand = &cli.Command{
		Action:    submitAction,
		Name:      "submit",
		Usage:     "submit a signed envelope to horizon",
		ArgsUsage: "<envelope>",
		Flags: []cli.Flag{
			netFlag,
			gatewayFlag,
		},
	}
)

func initArgsSubmit(ctx *cli.Context) {
	net = ctx.String(netFlag.Name)
	gateway = ctx.String(gatewayFlag.Name)
}

func submitAction(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	initArgsSubmit(ctx)
	arg := ctx.Args().Get(0)
	if arg == "" {
		return fmt.Errorf("empty envelope argument")
	}
	env, err := data.EnvelopeFromBase64(arg)
	if err != nil {
		log.Fatalf("decode envelope failed: %v", err)
	}
	if len(env.Signatures()) == 0 {
		log.Warn("submitting envelope without signatures")
	}
	initClient()

	result, err := horizon.SubmitTransaction(env)
	if err != nil {
		var herr *client.Error
		if errors.As(err, &herr) {
			if codes, ok := herr.ResultCodes(); ok {
				log.Fatal("transaction rejected", "tx", codes.Transaction, "ops", codes.Operations)
			}
		}
		log.Fatal("submit transaction failed", "err", err)
	}
	fmt.Printf("submitted tx: %v in ledger %v\n", result.Hash, result.Ledger)
	return nil
}

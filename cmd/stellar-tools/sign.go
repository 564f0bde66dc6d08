package main

import (
	"fmt"

	"github.com/anyswap/stellar-sdk-go/cmd/utils"
	"github.com/anyswap/stellar-sdk-go/data"
	"github.com/anyswap/stellar-sdk-go/keypair"
	"github.com/anyswap/stellar-sdk-go/log"
	"github.com/urfave/cli/v2"
)

var (
	signCommand = &cli.Command{
		Action:    signAction,
		Name:      "sign",
		Usage:     "sign a base64 transaction envelope",
		ArgsUsage: "<envelope>",
		Flags: []cli.Flag{
			seedFlag,
			netFlag,
		},
	}
)

func initArgsSign(ctx *cli.Context) {
	seed = ctx.String(seedFlag.Name)
	net = ctx.String(netFlag.Name)
}

func signAction(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	initArgsSign(ctx)
	arg := ctx.Args().Get(0)
	if arg == "" {
		return fmt.Errorf("empty envelope argument")
	}
	if seed == "" {
		return fmt.Errorf("must specify signing seed")
	}
	env, err := data.EnvelopeFromBase64(arg)
	if err != nil {
		log.Fatalf("decode envelope failed: %v", err)
	}
	kp, err := keypair.FromSecretSeed(seed)
	if err != nil {
		log.Fatalf("parse seed failed: %v", err)
	}

	network := resolveNetwork()
	if err := env.Sign(network, kp); err != nil {
		log.Fatal("sign envelope failed", "err", err)
	}
	hash, err := env.Hash(network)
	if err != nil {
		log.Fatal("hash envelope failed", "err", err)
	}
	b64, err := env.Base64()
	if err != nil {
		log.Fatal("encode envelope failed", "err", err)
	}
	log.Info("signed envelope", "signer", kp.Address(), "hash", hash.String())
	fmt.Println(b64)
	return nil
}

package main

import (
	"fmt"

	"github.com/anyswap/stellar-sdk-go/cmd/utils"
	"github.com/anyswap/stellar-sdk-go/keypair"
	"github.com/anyswap/stellar-sdk-go/log"
	"github.com/urfave/cli/v2"
)

var (
	keygenCommand = &cli.Command{
		Action:    keygen,
		Name:      "keygen",
		Usage:     "generate a random signing key",
		ArgsUsage: " ",
		Flags:     []cli.Flag{},
	}
)

func keygen(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	kp, err := keypair.Random()
	if err != nil {
		log.Fatalf("%v", err)
	}
	secret, err := kp.Seed()
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("address: %v\n", kp.Address())
	fmt.Printf("seed: %v\n", secret)
	return nil
}

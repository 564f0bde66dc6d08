package main

import (
	"fmt"
	"strings"

	"github.com/anyswap/stellar-sdk-go/cmd/utils"
	"github.com/anyswap/stellar-sdk-go/keypair"
	"github.com/anyswap/stellar-sdk-go/log"
	"github.com/urfave/cli/v2"
)

var (
	deriveCommand = &cli.Command{
		Action:    derive,
		Name:      "derive",
		Usage:     "derive a signing key from a mnemonic",
		ArgsUsage: "<mnemonic words>",
		Flags: []cli.Flag{
			accountIndexFlag,
			mnemonicPassphraseFlag,
		},
	}
)

func derive(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	mnemonic := strings.Join(ctx.Args().Slice(), " ")
	if mnemonic == "" {
		return fmt.Errorf("empty mnemonic argument")
	}
	index := ctx.Uint(accountIndexFlag.Name)
	passphrase := ctx.String(mnemonicPassphraseFlag.Name)

	kp, err := keypair.FromBip39Seed(keypair.NewMnemonicSeed(mnemonic, passphrase), uint32(index))
	if err != nil {
		log.Fatalf("derive key failed: %v", err)
	}
	secret, err := kp.Seed()
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("account index: %v\n", index)
	fmt.Printf("address: %v\n", kp.Address())
	fmt.Printf("seed: %v\n", secret)
	return nil
}

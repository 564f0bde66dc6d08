package main

import (
	"fmt"

	"github.com/anyswap/stellar-sdk-go/cmd/utils"
	"github.com/anyswap/stellar-sdk-go/data"
	"github.com/anyswap/stellar-sdk-go/log"
	"github.com/anyswap/stellar-sdk-go/terminal"
	"github.com/urfave/cli/v2"
)

var (
	inspectCommand = &cli.Command{
		Action:    inspect,
		Name:      "inspect",
		Usage:     "decode and print a base64 transaction envelope",
		ArgsUsage: "<envelope>",
		Flags:     []cli.Flag{},
	}
)

func inspect(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	arg := ctx.Args().Get(0)
	if arg == "" {
		return fmt.Errorf("empty envelope argument")
	}
	env, err := data.EnvelopeFromBase64(arg)
	if err != nil {
		log.Fatalf("decode envelope failed: %v", err)
	}
	terminal.PrintEnvelope(env, terminal.ShowOperations|terminal.ShowSignatures)
	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/anyswap/stellar-sdk-go/client"
	"github.com/anyswap/stellar-sdk-go/cmd/utils"
	"github.com/anyswap/stellar-sdk-go/log"
	"github.com/anyswap/stellar-sdk-go/params"
	"github.com/anyswap/stellar-sdk-go/terminal"
	"github.com/urfave/cli/v2"
)

var (
	recentFlag = &cli.Uint64Flag{
		Name:  "recent",
		Usage: "show this many recent transactions",
		Value: 0,
	}

	accountCommand = &cli.Command{
		Action:    accountAction,
		Name:      "account",
		Usage:     "show account details",
		ArgsUsage: "<address or alias>",
		Flags: []cli.Flag{
			utils.ConfigFileFlag,
			netFlag,
			gatewayFlag,
			recentFlag,
		},
	}
)

func initArgsAccount(ctx *cli.Context) {
	net = ctx.String(netFlag.Name)
	gateway = ctx.String(gatewayFlag.Name)
}

func accountAction(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	initArgsAccount(ctx)
	address := ctx.Args().Get(0)
	if address == "" {
		return fmt.Errorf("empty address argument")
	}

	configFile := utils.GetConfigFilePath(ctx)
	if configFile != "" {
		config := params.LoadConfig(configFile)
		address = config.ResolveAccount(address)
		if gateway == "" && config.Gateway != nil {
			gateway = config.Gateway.HorizonURL
		}
	}
	initClient()

	acct, err := horizon.AccountDetail(address)
	if err != nil {
		if errors.Is(err, client.ErrAccountNotFound) {
			log.Fatal("account not found", "address", address)
		}
		log.Fatal("get account failed", "address", address, "err", err)
	}
	terminal.Println(acct, terminal.Default)
	for _, b := range acct.Balances {
		terminal.Println(b, terminal.Indent)
	}

	recent := ctx.Uint64(recentFlag.Name)
	if recent > 0 {
		records, err := horizon.Transactions(address, client.PageQuery{Limit: int(recent), Order: "desc"})
		if err != nil {
			log.Fatal("get transactions failed", "address", address, "err", err)
		}
		for _, rec := range records {
			terminal.Println(rec, terminal.Indent)
		}
	}
	return nil
}

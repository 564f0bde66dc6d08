package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/anyswap/stellar-sdk-go/client"
	"github.com/anyswap/stellar-sdk-go/cmd/utils"
	"github.com/anyswap/stellar-sdk-go/data"
	"github.com/anyswap/stellar-sdk-go/log"
	"github.com/urfave/cli/v2"
)

var (
	clientIdentifier = "stellartools"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the stellar tools command line interface")

	seed    string
	net     string
	gateway string
	horizon *client.Client

	seedFlag = &cli.StringFlag{
		Name:  "seed",
		Usage: "signing seed",
	}
	netFlag = &cli.StringFlag{
		Name:  "net",
		Usage: "network name or passphrase, ie. public, testnet",
		Value: "testnet",
	}
	gatewayFlag = &cli.StringFlag{
		Name:  "gateway",
		Usage: "horizon api provider",
	}
	accountIndexFlag = &cli.UintFlag{
		Name:  "index",
		Usage: "derivation account index",
		Value: 0,
	}
	mnemonicPassphraseFlag = &cli.StringFlag{
		Name:  "passphrase",
		Usage: "mnemonic passphrase",
	}
)

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func initApp() {
	app.Action = stellartools
	app.HideVersion = true // we have a command to print the version
	app.Commands = []*cli.Command{
		keygenCommand,
		deriveCommand,
		inspectCommand,
		signCommand,
		submitCommand,
		accountCommand,
		utils.VersionCommand,
	}
	app.Flags = []cli.Flag{
		utils.VerbosityFlag,
		utils.JsonFormatFlag,
		utils.ColorFormatFlag,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func stellartools(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	if ctx.NArg() > 0 {
		return fmt.Errorf("invalid command: %q", ctx.Args().Get(0))
	}

	_ = cli.ShowAppHelp(ctx)
	fmt.Println()
	log.Fatalf("please specify a sub command to run")
	return nil
}

func resolveNetwork() data.Network {
	switch strings.ToLower(net) {
	case "mainnet", "main", "public":
		return data.PublicNetwork
	case "testnet", "test":
		return data.TestNetwork
	default:
		return data.Network{Passphrase: net}
	}
}

func initClient() {
	if gateway == "" {
		switch strings.ToLower(net) {
		case "mainnet", "main", "public":
			gateway = "https://horizon.stellar.org"
		case "testnet", "test":
			gateway = "https://horizon-testnet.stellar.org"
		default:
			log.Fatalf("no default gateway for network: %v", net)
		}
	}
	c, err := client.New(gateway)
	if err != nil {
		log.Fatal("connect to horizon failed", "gateway", gateway, "err", err)
	}
	horizon = c
	log.Printf("using horizon api %v", gateway)
}

// Package main is powcli, a command line tool around the consensus engine. It
// mines blocks on a throwaway regtest chain and verifies, patches and decodes
// headers.
//
// Usage:
//
//	powcli mine --blocks 3 --algo SCRYPT
//	powcli verify <header hex>
//	powcli nonce <header hex> <nonce>
//	powcli algo <integer>
package main

import (
	"log"
	"os"

	"github.com/bsv-blockchain/teranode-consensus/settings"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
)

func main() {
	tSettings := settings.NewSettings()
	logger := ulogger.New("powcli", ulogger.WithLevel(tSettings.LogLevel))

	app := newApp(logger, tSettings, os.Stdout)

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

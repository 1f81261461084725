// Package main is the entry point of emuctl. It installs the signal
// handling, hands the command line to the cobra tree, and wires the
// dependency graph with samber/do v2 once the config is loaded.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsamuelsen11/emuctl/internal/adapters/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, cli.Options{
		Version: version,
		Factory: newRuntime,
	}, os.Args[1:])
	stop()
	os.Exit(code)
}

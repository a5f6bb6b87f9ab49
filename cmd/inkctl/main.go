// Package main is the entry point for inkctl, the inkwell operator CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"inkwell/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCmd(cli.OpenFromEnv, version).ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !cli.IsReported(err) {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
	}
	stop()
	os.Exit(1)
}

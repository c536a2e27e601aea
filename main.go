package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/camt-fix/cmd/batch"
	"fjacquet/camt-fix/cmd/fix"
	"fjacquet/camt-fix/cmd/root"
	"fjacquet/camt-fix/cmd/validate"
	"fjacquet/camt-fix/cmd/version"
	"fjacquet/camt-fix/internal/config"
)

func init() {
	// 1. Load .env before any command reads the environment
	config.LoadEnv()

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(fix.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(version.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.Cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

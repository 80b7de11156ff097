// Package main is the entry point for the define CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/f3rmion/define/cmd/define/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	uierrs "github.com/cppforlife/go-cli-ui/errors"

	"github.com/reoring/yamlschema/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	command := cli.NewDefaultCmd()

	err := command.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "yamlschema: Error: %s\n", uierrs.NewMultiLineError(err))
	}
	os.Exit(cli.ExitCode(err))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"refstar/internal/adapters/cli"
	"refstar/internal/platform/config/raw"
	"refstar/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// logs go to stderr so stdout stays parseable, quiet unless LOG_LEVEL says otherwise
	opt := logger.FromEnv()
	opt.Level = raw.New().Get("LOG_LEVEL", "warn")
	opt.Writer = os.Stderr
	logger.Init(opt)

	err := cli.NewRootCmd().ExecuteContext(ctx)
	var ee *cli.ExitError
	if err != nil && !errors.As(err, &ee) {
		fmt.Fprintln(os.Stderr, "refstar:", err)
	}
	stop()
	os.Exit(cli.ExitCode(err))
}

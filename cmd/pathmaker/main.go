package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/pathmaker/internal/cli"
	perrors "github.com/matzehuels/pathmaker/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}

// exitCode returns the process exit status for err.
func exitCode(err error) int {
	switch perrors.GetCode(err) {
	case perrors.ErrCodeNotFound:
		return 3
	case perrors.ErrCodeMalformedMap:
		return 4
	case perrors.ErrCodeInvalidConfig:
		return 5
	default:
		return 1
	}
}

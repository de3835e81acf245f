package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/arborheat/internal/cli"
	apperrors "github.com/matzehuels/arborheat/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		if code := apperrors.GetCode(err); code != "" {
			c.Logger.Error(apperrors.UserMessage(err), "code", code)
		} else {
			c.Logger.Error(err)
		}
		os.Exit(1)
	}
}

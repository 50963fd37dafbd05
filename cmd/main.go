package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/tuber/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrAborted) {
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}

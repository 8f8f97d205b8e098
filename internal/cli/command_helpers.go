package cli

import (
	"context"
	"strings"
	"time"

	"github.com/isholao/viewctl/pkg/executor"
)

func executorNames() string {
	return strings.Join(executor.Names(), ", ")
}

// withTimeout bounds ctx by d; a zero d leaves it unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func entryArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSpace(args[0])
}

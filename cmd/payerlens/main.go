// Command payerlens scores practices, benchmarks payer rates and builds
// negotiation playbooks from YAML or JSON input. Results are printed as
// JSON on stdout; logs go to stderr.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

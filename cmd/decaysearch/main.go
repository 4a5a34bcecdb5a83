// Command decaysearch identifies candidate radioactive decays from observed
// gamma or alpha energies.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &rootOptions{}
	if err := execute(ctx, newRootCmd(opts), opts); err != nil {
		if errors.Is(err, errInvalidQuery) {
			stop()
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

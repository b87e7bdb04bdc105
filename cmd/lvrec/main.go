// SPDX-License-Identifier: MIT

// Command lvrec solves linear homogeneous recurrences with constant
// coefficients.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/katalvlaran/lvrec/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}

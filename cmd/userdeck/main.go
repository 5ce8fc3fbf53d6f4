package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/userdeck/userdeck/internal/cmd"
	"github.com/userdeck/userdeck/internal/exitcode"
	"github.com/userdeck/userdeck/internal/ux"
)

func main() {
	// A context that ends on Ctrl+C or SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled")
			exitcode.Exit(exitcode.Interrupted)
		}

		fmt.Fprintln(os.Stderr, ux.RenderError(err, os.Getenv("NO_COLOR") != ""))
		exitcode.ExitWithError(err)
	}
	exitcode.Exit(exitcode.Success)
}

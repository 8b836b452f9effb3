package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/pthm/uniformcheck/internal/cmd"
	"github.com/pthm/uniformcheck/internal/version"
)

func main() {
	err := fang.Execute(context.Background(), cmd.RootCmd,
		fang.WithVersion(version.Short()),
		fang.WithErrorHandler(cmd.ErrorHandler),
	)
	if err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/sl40168/bondetl/internal/logging"
)

func main() {
	appLogger := logging.New(logging.Options{
		Level:     "info",
		Component: "bondetl",
	})

	rootCmd := newRootCmd(appLogger)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// Package main provides the leaplang command.
package main

import (
	"context"
	"os"

	"github.com/leapstack-labs/leaplang/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

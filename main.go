package main

import (
	"fmt"
	"io"
	"os"

	"swiftstock/internal/cli"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "swiftstock: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cmd := cli.NewRootCommand(out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jbonatakis/cabinlog/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		var ue cli.UsageError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, "error:", ue.Error())
			fmt.Fprintln(os.Stderr)
			fmt.Fprint(os.Stderr, cli.Usage())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err.Error())
		os.Exit(1)
	}
}

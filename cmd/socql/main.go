// Command socql is the SOCQL query tooling CLI.
package main

import (
	"os"

	"github.com/soclabs/socql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

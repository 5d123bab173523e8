package main

import (
	"os"

	"github.com/watan-hr/fingerprint-attendance/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

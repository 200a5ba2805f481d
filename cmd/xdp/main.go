package main

import (
	"os"

	"github.com/bnema/xpertdoc-portal-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

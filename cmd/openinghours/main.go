package main

import (
	"os"

	"github.com/Xevion/go-openinghours/cmd/openinghours/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/loraforward/gateway-bridge/cmd/gateway-bridge/cmd"
)

func main() {
	if err := cmd.Execute(version); err != nil {
		os.Exit(1)
	}
}

var version string // set by -ldflags "-X main.version=..."

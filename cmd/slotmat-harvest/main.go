package main

import (
	"os"

	"github.com/dialogkit/slotmat/internal/harvest"
)

var version = "dev"

func main() {
	if err := harvest.New(version).Run(); err != nil {
		os.Exit(1)
	}
}

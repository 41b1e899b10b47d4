package main

import (
	"os"

	"github.com/mizuki/cardrill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

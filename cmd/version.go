package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped by the release build via -ldflags.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the cardrill version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cardrill %s\n", version)
	},
}

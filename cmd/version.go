package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/brogergvhs/komikd/internal/providers"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/brogergvhs/komikd/cmd.Version=...".
var Version = "dev"

func version() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	return Version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the komikd version and the sources it was built with",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("komikd version:", version())

		fmt.Println("sources:")
		for _, info := range providers.All() {
			fmt.Printf("  %-20s %s (%s)\n", info.ID, info.Name, info.Lang)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

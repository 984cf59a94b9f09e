package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the voxvault version",
	Args:  cobra.NoArgs,
	Run: func(*cobra.Command, []string) {
		fmt.Printf("voxvault %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
	},
}

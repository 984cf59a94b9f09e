// Command voxvault records, transcribes and journals voice notes into a
// markdown vault. All behaviour lives in internal/cli; this entry point
// only translates the CLI result into an exit code.
package main

import (
	"os"

	"github.com/birkelund/voxvault/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

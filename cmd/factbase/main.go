// Command factbase checks predicate declarations, exports fact files and
// runs query scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/factbase/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}

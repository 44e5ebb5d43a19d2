// main is the entry point for the gldash CLI.
package main

import (
	"fmt"
	"os"

	"github.com/yungngaew/gitlab-dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

// spacemap analyzes disk usage: it scans a directory into a size-aggregated
// tree and lays the largest files out as a squarified treemap.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/spacemap/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

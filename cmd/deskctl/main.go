// Command deskctl drives the SharedDesk API from a terminal: browsing spaces,
// toggling opening notifications and handling rental requests.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

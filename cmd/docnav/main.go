// Command docnav keeps the navigation menu in a Jekyll-style site's
// configuration file in sync with the front matter of its pages.
package main

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/docnav/cmd/docnav/commands"
	"git.home.luguber.info/inful/docnav/internal/config"
)

func main() {
	// Environment defaults must be in place before flags are parsed.
	if _, err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "docnav: loading .env: %v\n", err)
		os.Exit(1)
	}
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}

package main

import (
	"os"

	"github.com/rahra/go-xpm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

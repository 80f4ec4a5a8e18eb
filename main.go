package main

import (
	"os"

	"github.com/ventas-crm/tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

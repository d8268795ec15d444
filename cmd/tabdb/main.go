package main

import (
	"os"
	"tabDB/cmd/tabdb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

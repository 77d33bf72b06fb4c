package main

import (
	"os"

	"github.com/tanpawarit/hinglish-coldcall-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

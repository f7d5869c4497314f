package main

import (
	"fmt"
	"os"

	"github.com/whales-names/whales/cmd"
	"github.com/whales-names/whales/revision"
)

func main() {
	if len(os.Args) == 2 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Println(revision.GetVersion())
			os.Exit(0)
		}
	}
	cmd.Execute()
}

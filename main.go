package main

import (
	"log"

	"github.com/thiagokokada/git-smartlog/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("git-smartlog: %v", err)
	}
}

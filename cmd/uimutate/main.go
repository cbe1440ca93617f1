package main

import (
	"log"

	"github.com/jask/uimutate/cmd/uimutate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("uimutate: %v", err)
	}
}

package main

import (
	"github.com/draftnight/auction-go/internal/cli"
)

func main() {
	cli.Execute()
}

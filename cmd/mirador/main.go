package main

import (
	"github.com/miradorhq/mirador/internal/cli"
)

func main() {
	cli.Execute()
}

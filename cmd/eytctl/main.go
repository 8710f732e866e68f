package main

import (
	"github.com/eytgaming/eytgaming/internal/cli"
)

func main() {
	cli.Execute()
}

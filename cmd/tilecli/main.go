package main

import (
	"github.com/tilematch/backend/internal/cli"
)

func main() {
	cli.Execute()
}

package main

import (
	"github.com/brogergvhs/komikd/cmd"

	_ "github.com/brogergvhs/komikd/internal/providers/gudangkomik"
)

func main() {
	cmd.Execute()
}

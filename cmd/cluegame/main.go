package main

import "github.com/mcoot/cluegame-go/internal/cli"

func main() {
	cli.Execute()
}

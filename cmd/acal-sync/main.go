package main

import "github.com/pfrederiksen/acal-sync/internal/cli"

func main() {
	cli.Execute()
}

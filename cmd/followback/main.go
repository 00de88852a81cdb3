package main

import "followback/internal/cli"

func main() {
	cli.Execute()
}

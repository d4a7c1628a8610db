package main

import "local-notes/cli"

func main() {
	cli.Execute()
}

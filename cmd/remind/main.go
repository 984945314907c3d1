package main

import "github.com/felixgeelhaar/remind/cmd/remind/cli"

func main() {
	cli.Execute()
}

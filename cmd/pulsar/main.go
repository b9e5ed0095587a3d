package main

import "github.com/cameron-webmatter/pulsar/pkg/cli"

func main() {
	cli.Execute()
}

package main

import "svw.info/gridsolve/internal/cli"

func main() {
	cli.Execute()
}

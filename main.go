package main

import "github.com/veritab/veritab/cmd"

var version = "v0.3.1"

func main() {
	cmd.Execute(version)
}

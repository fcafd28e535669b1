package main

import "github.com/tranvictor/calldata/cmd"

func main() {
	cmd.Execute()
}

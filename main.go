package main

import "github.com/notargets/edgeflux/cmd"

func main() {
	cmd.Execute()
}

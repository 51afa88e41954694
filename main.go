package main

import "github.com/deploylab/trussim/cmd"

func main() {
	cmd.Execute()
}

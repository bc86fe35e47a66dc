package main

import "github.com/anprojects-core/cmd"

func main() {
	cmd.Execute()
}

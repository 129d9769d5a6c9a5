package main

import "mediagrab/cmd"

func main() {
	cmd.Execute()
}

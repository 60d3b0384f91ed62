package main

import "follow-check/cmd"

func main() {
	cmd.Execute()
}

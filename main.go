package main

import "pantry-tracker/cmd"

func main() {
	cmd.Execute()
}

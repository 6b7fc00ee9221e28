package main

import "runstreak/cmd"

func main() {
	cmd.Execute()
}

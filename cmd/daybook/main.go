package main

import "daybook/cmd/daybook/cmd"

func main() {
	cmd.Execute()
}

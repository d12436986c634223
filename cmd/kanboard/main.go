package main

import "kanboard/cmd/kanboard/commands"

func main() {
	commands.Execute()
}

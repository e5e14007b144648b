package main

import "promptdeck/cmd/promptdeck-cli/cmd"

func main() {
	cmd.Execute()
}

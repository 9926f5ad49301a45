package main

import "radio-playlist/cmd"

func main() {
	cmd.Execute()
}

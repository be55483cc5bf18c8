package main

import "github.com/excotide/moodify/cmd"

func main() {
	cmd.Execute()
}

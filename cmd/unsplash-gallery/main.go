package main

import "github.com/strrl/unsplash-gallery/cmd/unsplash-gallery/commands"

func main() {
	commands.Execute()
}

package main

import "github.com/pixelpad/pixelpad/internal/cli"

func main() {
	cli.Run()
}

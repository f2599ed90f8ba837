package main

import "github.com/example/room-calendar/internal/cli"

func main() {
	cli.Execute()
}

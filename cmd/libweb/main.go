package main

import "github.com/momeni/libweb/cmd/libweb/command"

func main() {
	command.Execute()
}

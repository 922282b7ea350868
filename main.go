package main

import "github.com/aricart/proto-srv-generator/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/Vicky-hu-coder/alx-console/cmd/alx/cmd"

func main() {
	cmd.Execute()
}

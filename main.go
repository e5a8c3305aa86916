package main

import "github.com/strivecli/strive/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/eslsoft/lingoguru/cmd"

func main() {
	cmd.Execute()
}

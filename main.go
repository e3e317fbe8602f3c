package main

import "github.com/user/splice-cli/cmd"

func main() {
	cmd.Execute()
}

package main

import "openshelf/cmd"

func main() {
	cmd.Execute()
}

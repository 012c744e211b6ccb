package main

import "aslc/cmd"

func main() {
	cmd.Execute()
}

package main

import "reviewlens/cmd"

func main() {
	cmd.Execute()
}

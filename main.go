package main

import "iremember/cmd"

func main() {
	cmd.Execute()
}

package main

import "collbool/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/OpenTraceLab/lib2sch/cmd/lib2sch/cmd"

func main() {
	cmd.Execute()
}

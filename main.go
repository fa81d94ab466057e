package main

import "github.com/alfurqan/aidctl/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/offsiteio/tripsim/cmd"

func main() {
	cmd.Execute()
}

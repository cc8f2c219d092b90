package main

import "github.com/naka-gawa/ghstats/cmd"

func main() {
	cmd.Execute()
}

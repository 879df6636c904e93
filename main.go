package main

import "github.com/jimmywalsh/portfolio/cmd"

func main() {
	cmd.Execute()
}

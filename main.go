package main

import "github.com/simonSlamka/wolter/cmd"

func main() {
	cmd.Execute()
}

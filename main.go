package main

import "github.com/guzus/garage/cmd"

func main() {
	cmd.Execute()
}

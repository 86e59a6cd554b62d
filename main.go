package main

import "github.com/automationz/ftpsnap/cmd"

func main() {
	cmd.Execute()
}

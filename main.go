package main

import "github.com/Mohsinsiddi/counterdapp/cmd"

func main() {
	cmd.Execute()
}

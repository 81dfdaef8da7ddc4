package main

import "retailsync/cmd/client/cmd"

func main() {
	cmd.Execute()
}

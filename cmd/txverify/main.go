package main

import "github.com/thetatoken/txverify/cmd/txverify/cmd"

func main() {
	cmd.Execute()
}

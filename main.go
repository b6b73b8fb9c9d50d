package main

import (
	"github.com/bugminer-dev/bugminer/cmd"
)

func main() {
	cmd.Execute()
}

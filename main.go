package main

import (
	"github.com/docwire/docwire/cmd"
)

func main() {
	cmd.Execute()
}

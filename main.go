package main

import (
	"github.com/tmultani945/log-parser-project/cli"
)

func main() {
	cli.Start()
}

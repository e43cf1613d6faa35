package main

import (
	"os"

	"shoecare/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

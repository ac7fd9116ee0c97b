package main

import (
	"os"

	"transcribed/internal/testctl"
)

func main() {
	os.Exit(testctl.Main())
}

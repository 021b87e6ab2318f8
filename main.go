package main

import (
	"log"

	"rfm-segment/cmd"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	cmd.Execute()
}

package main

import (
	"github.com/webitel/viberbot/cmd"

	// load packages so they can register commands
	_ "github.com/webitel/viberbot/cmd/viber"
)

func main() {
	cmd.Run()
}

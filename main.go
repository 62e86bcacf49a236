package main

import (
	"github.com/riskecrp/meridian-bot/internal/cmd"
)

func main() {
	cmd.Execute()
}

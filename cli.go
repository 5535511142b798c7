//go:build cli
// +build cli

package main

import (
	_ "foodcourt.GO/custom"

	"foodcourt.GO/cmd"
	"foodcourt.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}

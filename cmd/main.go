package main

import "ngnfx/internal/cli"

// @title USD/NGN FX Rate Engine API
// @version 1.0
// @description Blended USD/NGN rate from external sources, internal crypto prices and OTC desk costs.
// @BasePath /api
func main() {
	cli.Execute()
}

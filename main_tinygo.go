//go:build tinygo

package main

import (
	"fbcon/app"
	"fbcon/hal"
)

func main() {
	app.Run(hal.New())
}

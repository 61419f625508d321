package main

import (
	gg "github.com/ptrchase/guardedgraph"
)

func configureLogging(debug bool) {
	gg.ConfigureLogging(debug)
}

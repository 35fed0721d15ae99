package main

import (
	"geohash-codec/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}

package main

import (
	cmd "github.com/lehmamic/daggerheart-card-pdf-generator/cmd/cards"
)

func main() {
	cmd.Execute()
}

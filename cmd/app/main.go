package main

import (
	"github.com/humanbelnik/popchoice/internal/app"
	"github.com/humanbelnik/popchoice/internal/config"
)

func main() {
	app.Go(config.Load())
}

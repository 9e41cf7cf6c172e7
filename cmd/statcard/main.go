// Command statcard serves donut-chart stat cards over HTTP.
package main

import (
	"context"
	"log"

	"github.com/dalemusser/statcard/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}

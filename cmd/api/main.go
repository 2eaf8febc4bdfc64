package main

import (
	"context"
	"log"

	"github.com/Apurer/go-petclinic-server/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("petclinic api exited: %v", err)
	}
}

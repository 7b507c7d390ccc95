package main

import (
	"log"

	"github.com/Fred-Ko/wanted/internal/transport/http"
)

func main() {
	if err := http.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

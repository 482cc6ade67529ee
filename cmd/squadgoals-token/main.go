// Mints a development token for the given external auth uid. Production
// tokens come from the auth provider; this exists for local testing.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shafina/squadgoals/internal/config"
	"github.com/shafina/squadgoals/internal/services"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("Usage: squadgoals-token <auth-uid> [expiry, e.g. 24h]")
		os.Exit(1)
	}

	authUID := os.Args[1]

	expiry := 24 * time.Hour
	if len(os.Args) == 3 {
		parsed, err := time.ParseDuration(os.Args[2])
		if err != nil {
			log.Fatalf("Invalid expiry: %v", err)
		}
		expiry = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret)
	token, err := jwtService.GenerateToken(authUID, expiry)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}

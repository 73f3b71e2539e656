package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/modgate/modgate/internal/tokens"
)

// Mints a moderator bearer token for the override endpoint. The signing
// secret comes from JWT_SECRET, matching what the service verifies with.
func main() {
	var (
		sub = flag.String("sub", "", "subject the token is issued to")
		ttl = flag.Duration("ttl", time.Hour, "token lifetime")
	)
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if *sub == "" {
		log.Fatal("-sub is required")
	}

	raw, err := tokens.GenerateModeratorToken(secret, *sub, *ttl)
	if err != nil {
		log.Fatalf("mint token: %v", err)
	}
	fmt.Println(raw)
}

package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"go-procurement-fixtures/pkg/jwt"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	subject := flag.String("subject", "operator", "who the token is issued to")
	scopes := flag.String("scopes", jwt.ScopeRunsCreate, "comma separated scopes")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	// 2. Sign
	var granted []string
	for _, s := range strings.Split(*scopes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			granted = append(granted, s)
		}
	}
	token, err := jwt.GenerateToken(*subject, granted, *ttl)
	if err != nil {
		log.Fatalf("❌ Failed to sign token: %v", err)
	}

	log.Printf("✅ Token for %s (scopes: %s) valid for %s", *subject, strings.Join(granted, ","), *ttl)
	fmt.Println(token)
}

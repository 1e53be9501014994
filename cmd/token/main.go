package main

import (
	"anonymity-service/auth"
	"anonymity-service/domain"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// token issues a JWT for a principal, signed with the registry secret.
// Only administrative calls need one: sends and reads stay anonymous.
func main() {
	_ = godotenv.Load()

	var (
		principal = flag.String("principal", "", "principal the token is issued for (defaults to $OWNER)")
		secret    = flag.String("secret", "", "signing secret (defaults to $JWT_SECRET)")
		duration  = flag.Duration("duration", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	tokens, err := auth.NewTokens(lookup(*secret, "JWT_SECRET"), *duration)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	token, err := tokens.Generate(domain.Principal(lookup(*principal, "OWNER")))
	if err != nil {
		log.Fatalf("Token generation failed: %v", err)
	}
	fmt.Println(token)
}

func lookup(flagValue, key string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(key)
}

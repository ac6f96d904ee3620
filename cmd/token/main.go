// Command token mints an operator access token for the /api/v1/leads
// session and recovery routes.
package main

import (
	jwtPkg "LeadReceptionist/pkg/jwt"
	"LeadReceptionist/pkg/log"
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	id := flag.String("id", "", "operator id (required)")
	email := flag.String("email", "", "operator email")
	username := flag.String("username", "", "operator username")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	envErr := godotenv.Load()
	logger := log.NewLogger()
	if envErr != nil {
		logger.Warnf("No .env file loaded: %v", envErr)
	}

	claims, err := jwtPkg.OperatorClaims(*id, *email, *username)
	if err != nil {
		logger.Fatal(err)
	}

	token, expiresAt, err := jwtPkg.Sign(claims, *ttl)
	if err != nil {
		logger.Fatalf("Failed to sign operator token: %v", err)
	}

	logger.WithField("operator_id", *id).Infof("Token expires at %s", time.Unix(expiresAt, 0).Format(time.RFC3339))
	fmt.Println(token)
}

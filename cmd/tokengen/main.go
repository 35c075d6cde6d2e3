// Command tokengen mints operator tokens for gate terminals and admins.
//
//	JWT_SECRET=... go run ./cmd/tokengen -role operator
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"parkflow/internal/domain/operator"
	"parkflow/internal/pkg/jwt"

	"github.com/google/uuid"
)

func main() {
	var (
		roleFlag = flag.String("role", operator.RoleOperator.String(), "viewer, operator or admin")
		idFlag   = flag.String("id", "", "operator id, random when empty")
		ttl      = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fail("JWT_SECRET is not set")
	}

	role, err := operator.NewRole(*roleFlag)
	if err != nil {
		fail(err.Error())
	}

	id := uuid.New()
	if *idFlag != "" {
		if id, err = uuid.Parse(*idFlag); err != nil {
			fail("invalid -id: " + err.Error())
		}
	}

	token, err := jwt.NewService(secret, *ttl).GenerateToken(id, role)
	if err != nil {
		fail(err.Error())
	}
	fmt.Println(token)
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, "tokengen:", msg)
	os.Exit(1)
}

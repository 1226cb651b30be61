package main

import (
	"fmt"
	"os"

	"github.com/frontandrew/parklot/internal/pkg/hash"
)

// Генерирует bcrypt-хеш пароля оператора для OPERATOR_PASSWORD_HASH.
//
// Использование: go run scripts/hash_password.go <password>
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: go run scripts/hash_password.go <password>")
		os.Exit(1)
	}

	hashed, err := hash.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hashed)
}

package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Quick utility to generate a bcrypt hash for a user password
// Usage: go run scripts/hash_senha.go <email> <senha>
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run scripts/hash_senha.go <email> <senha>")
		fmt.Println("Example: go run scripts/hash_senha.go escrivao@corregedoria.pm s3nh4-f0rt3")
		os.Exit(1)
	}

	email, senha := os.Args[1], os.Args[2]

	// Generate bcrypt hash
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error generating hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bcrypt Hash: %s\n", string(hash))
	fmt.Printf("\nTo update in MongoDB, run:\n")
	fmt.Printf("db.usuarios.updateOne(\n")
	fmt.Printf("  {\"email\": %q},\n", email)
	fmt.Printf("  {$set: {\"senha\": %q, \"ativo\": true}}\n", string(hash))
	fmt.Printf(")\n")
}

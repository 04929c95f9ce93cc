package main

import (
	"fmt"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	fmt.Println("Generating bcrypt password hashes with DefaultCost (10):")
	fmt.Println()

	// Admin password
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	fmt.Printf("Password: admin123\nHash: %s\n\n", string(hash))

	// Demo learner password
	hash, _ = bcrypt.GenerateFromPassword([]byte("learner123"), bcrypt.DefaultCost)
	fmt.Printf("Password: learner123\nHash: %s\n\n", string(hash))

	// Test user password
	hash, _ = bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.DefaultCost)
	fmt.Printf("Password: testpass123\nHash: %s\n\n", string(hash))
}

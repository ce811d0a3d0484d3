package main

import (
	"fmt"
	"log"
	"os"

	"github.com/TonyMerlin/M2-ProductFinder/services"
	"github.com/joho/godotenv"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main mints an admin JWT for the cache build/clear endpoints
// Usage: go run cmd/admintoken/main.go
// This is a standalone CLI tool, not part of the main application
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("PRODUCT FINDER - Admin Token Minter")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}
	if err := services.InitJWTService(jwtSecret); err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	adminID, email := getAdminIdentity()

	token, err := services.GenerateAdminJWT(adminID, email)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Admin Token Minted (valid 7 days)")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Use it as a bearer header:")
	fmt.Println("  curl -X POST -H \"Authorization: Bearer <token>\" \\")
	fmt.Println("    http://localhost:8081/api/v1/admin/finder/cache/build")
	fmt.Println()
}

// getAdminIdentity prompts for the identity baked into the token
func getAdminIdentity() (adminID, email string) {
	fmt.Println("Enter Admin Identity:")
	fmt.Println()

	for {
		fmt.Print("Admin ID: ")
		fmt.Scanln(&adminID)
		if adminID != "" {
			break
		}
		fmt.Println("❌ Admin ID cannot be empty")
	}

	for {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
		if email != "" {
			break
		}
		fmt.Println("❌ Email cannot be empty")
	}

	return adminID, email
}

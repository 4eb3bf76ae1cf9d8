package main

import (
	"fmt"
	"os"
	"syscall"
	"unicode"

	"github.com/websopen/web-valencio/internal/config"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// Generates the ADMIN_PIN_HASH value from a PIN typed at a hidden prompt.
func main() {
	cfg := config.Load()

	fmt.Println("=== Generate Admin PIN Hash ===")
	fmt.Print("Enter 4-digit PIN: ")

	bytePin, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading PIN")
		os.Exit(1)
	}

	pin := string(bytePin)
	if !validPIN(pin) {
		fmt.Println("Error: PIN must be exactly 4 digits")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cfg.BcryptCost)
	if err != nil {
		fmt.Printf("Error hashing PIN: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nADMIN_PIN_HASH=%s\n", hash)
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

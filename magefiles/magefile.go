//go:build mage

package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the web service and the terminal client to ./bin.
func Build() error {
	fmt.Println(">> Building binaries...")
	if err := sh.Run("go", "build", "-o", "bin/salesform", "./cmd/salesform"); err != nil {
		return err
	}
	return sh.Run("go", "build", "-o", "bin/salesform-cli", "./cmd/salesform-cli")
}

// Run builds then starts the web service.  Configuration is read from .env.
func Run() error {
	mg.Deps(Build)
	fmt.Println(">> Starting salesform...")
	return sh.RunV("./bin/salesform")
}

// Fill builds then starts the terminal client.
func Fill() error {
	mg.Deps(Build)
	cmd := exec.Command("./bin/salesform-cli")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Test runs all unit tests.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println(">> Cleaning...")
	return os.RemoveAll("bin")
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("error loading .env file: %v", err)
	}
}

//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary        = "bin/academlist-server"
	defaultDBPath = "academlist.db"
)

// dbPath is the ledger file used by Dev, Dbup and Clean.
func dbPath() string {
	if p := os.Getenv("ACADEMLIST_DB_PATH"); p != "" {
		return p
	}
	return defaultDBPath
}

// Dbup runs dbmate to apply db migrations to the submission ledger.
// The server also creates its table on start, so this is optional locally.
func Dbup() error {
	if _, err := exec.LookPath("dbmate"); err != nil {
		fmt.Println(">> dbmate not found; install with:")
		fmt.Println("   go install github.com/amacneil/dbmate/v2@latest")
		return err
	}
	fmt.Println(">> dbmate up", dbPath())
	return sh.RunWith(map[string]string{"DATABASE_URL": "sqlite:" + dbPath()}, "dbmate", "up")
}

// Build tidies deps, then compiles to ./bin/academlist-server.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building server binary...")
	return sh.Run("go", "build", "-o", binary, "./cmd/server")
}

// Run builds then executes the binary.
func Run() error {
	mg.Deps(Build)
	fmt.Println(">> Starting server ...")
	return sh.RunV("./" + binary)
}

// Dev starts the server via go run with debug console logging and a local
// ledger, so receipts are available.
func Dev() error {
	fmt.Println(">> Dev mode: go run ./cmd/server ...")
	return sh.RunWithV(map[string]string{
		"ACADEMLIST_DEV":       "true",
		"ACADEMLIST_LOG_LEVEL": "debug",
		"ACADEMLIST_DB_PATH":   dbPath(),
	}, "go", "run", "./cmd/server")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests with the race detector.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and the local SQLite ledger.
func Clean() error {
	fmt.Println(">> Cleaning...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm(dbPath())
}

// Install builds and installs the binary to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.Run("go", "install", "./cmd/server")
}

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}
}

// Command control drives a running account fixture from UI test scripts.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	switch cmd {
	case "status":
		statusCmd()
	case "confirm":
		confirmCmd()
	case "login":
		loginCmd()
	case "logout":
		simpleCmd("logout", http.MethodPost, "/api/v1/auth/logout")
	case "delete":
		simpleCmd("delete", http.MethodDelete, "/api/v1/account")
	case "reset-password":
		resetPasswordCmd()
	default:
		log.Fatalf("Unknown command: %s", cmd)
	}
}

func usage() {
	fmt.Println("Usage: control <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  status          Show the signed-in account and alert state")
	fmt.Println("  confirm         Answer the pending credential-change alert")
	fmt.Println("  login           Sign in with --user and --password")
	fmt.Println("  logout          Sign out, keeping the registered user")
	fmt.Println("  delete          Reset the registered user to defaults")
	fmt.Println("  reset-password  Simulate a password reset for --user")
}

func baseFlags(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	addr := fs.String("addr", envOr("FIXTURE_URL", "http://localhost:8080"), "Fixture base URL")
	return fs, addr
}

func statusCmd() {
	fs, addr := baseFlags("status")
	fs.Parse(os.Args[2:])

	call(*addr, http.MethodGet, "/health", nil)
	call(*addr, http.MethodGet, "/api/v1/account", nil)
	call(*addr, http.MethodGet, "/api/v1/alert", nil)
}

func confirmCmd() {
	fs, addr := baseFlags("confirm")
	wait := fs.Duration("wait", 0, "Poll this long for an alert to appear")
	fs.Parse(os.Args[2:])

	deadline := time.Now().Add(*wait)
	for {
		var state struct {
			Presenting bool `json:"presenting"`
		}
		decode(call(*addr, http.MethodGet, "/api/v1/alert", nil), &state)
		if state.Presenting || time.Now().After(deadline) {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	call(*addr, http.MethodPost, "/api/v1/alert/confirm", nil)
}

func loginCmd() {
	fs, addr := baseFlags("login")
	user := fs.String("user", "", "User ID")
	password := fs.String("password", "", "Password")
	fs.Parse(os.Args[2:])

	if *user == "" {
		fmt.Println("Error: --user is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	call(*addr, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"userId":   *user,
		"password": *password,
	})
}

func resetPasswordCmd() {
	fs, addr := baseFlags("reset-password")
	user := fs.String("user", "", "User ID")
	fs.Parse(os.Args[2:])

	if *user == "" {
		fmt.Println("Error: --user is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	call(*addr, http.MethodPost, "/api/v1/auth/password/reset", map[string]string{"userId": *user})
}

func simpleCmd(name, method, path string) {
	fs, addr := baseFlags(name)
	fs.Parse(os.Args[2:])
	call(*addr, method, path, nil)
}

// call prints the response body and returns it.
func call(addr, method, path string, body any) []byte {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("Failed to encode request: %v", err)
		}
	}

	req, err := http.NewRequest(method, addr+path, &buf)
	if err != nil {
		log.Fatalf("Invalid request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}
	fmt.Printf("%s %s -> %d %s", method, path, resp.StatusCode, out)
	return out
}

func decode(data []byte, v any) {
	if err := json.Unmarshal(data, v); err != nil {
		log.Fatalf("Unexpected response: %v", err)
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

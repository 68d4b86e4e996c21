package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lm-xiao-fen/my-inft-repo/internal/seed"
)

// Default configuration constants.
const (
	defaultCount   = 10
	defaultTimeout = 30 * time.Second
	defaultRunTime = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "Base URL of the service")
		username = flag.String("username", "admin", "Admin username")
		password = flag.String("password", "password", "Admin password")
		count    = flag.Int("count", defaultCount, "Number of sample profiles to create")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTime)
	defer cancel()

	result, err := seed.Run(ctx, seed.Config{
		BaseURL:  *baseURL,
		Username: *username,
		Password: *password,
		Count:    *count,
		Timeout:  *timeout,
	})
	if err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Printf("created %d profiles, listing shows %d, took %s\n", result.Created, result.Listed, result.Elapsed.Round(time.Millisecond))
}

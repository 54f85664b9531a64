package httputil_test

import (
	"context"
	"fmt"
	"time"

	"github.com/avernet/stockpulse/pkg/httputil"
	"github.com/avernet/stockpulse/pkg/logger"
)

// Example_basic demonstrates basic HTTP client usage
func Example_basic() {
	log := logger.NewNop()

	// All outbound requests go through this client
	client := httputil.New(log)

	ctx := context.Background()
	resp, err := client.Get(ctx, "https://api.example.com/data")
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Printf("Status: %d\n", resp.StatusCode)
}

// Example_withRetry demonstrates retry configuration
func Example_withRetry() {
	log := logger.NewNop()

	// Create client with custom retry settings
	client := httputil.New(log).
		WithRetry(5, 2*time.Second) // 5 retries, 2s initial delay

	ctx := context.Background()
	resp, err := client.Get(ctx, "https://api.example.com/data")
	if err != nil {
		fmt.Printf("Request failed after retries: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Println("Request succeeded")
}

// Example_withRateLimit demonstrates throttling outbound requests
func Example_withRateLimit() {
	log := logger.NewNop()

	// 2 requests per second, bursts of 4
	client := httputil.New(log).WithRateLimit(2, 4)

	ctx := context.Background()
	resp, err := client.Get(ctx, "https://api.example.com/data")
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Println("Request completed")
}

// Example_timeout demonstrates custom timeout
func Example_timeout() {
	log := logger.NewNop()

	// Create client with 5 second timeout
	client := httputil.NewWithTimeout(log, 5*time.Second)

	ctx := context.Background()
	resp, err := client.Get(ctx, "https://api.example.com/slow-endpoint")
	if err != nil {
		fmt.Printf("Request timeout: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Println("Request completed within timeout")
}

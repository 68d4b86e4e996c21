// Package seed implements a small smoke tool that exercises a running
// instance over HTTP: it logs in, creates sample profiles, and verifies they
// appear in the listing.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Config controls a seeding run.
type Config struct {
	BaseURL  string
	Username string
	Password string
	Count    int
	Timeout  time.Duration
}

// Result summarizes a completed run.
type Result struct {
	Created int
	Listed  int
	Elapsed time.Duration
}

// sampleNames cycles through the generated profiles.
var sampleNames = []string{"张三", "李四", "王五", "赵六", "孙七", "周八"}

var sampleTags = []string{"up主", "剪辑", "初中生", "游戏", "音乐"}

// Run executes the seeding flow against a live instance.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("count must be positive")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	client := &http.Client{Timeout: cfg.Timeout, Jar: jar}

	start := time.Now()

	if err := login(ctx, client, cfg); err != nil {
		return nil, err
	}

	created := 0
	for i := 0; i < cfg.Count; i++ {
		name := fmt.Sprintf("%s-%d", sampleNames[i%len(sampleNames)], i+1)
		draft := map[string]any{
			"name":   name,
			"tags":   []string{sampleTags[i%len(sampleTags)]},
			"bio_md": "## " + name + "\n\nseeded profile",
			"score":  rand.Intn(100),
		}
		if err := postJSON(ctx, client, cfg.BaseURL+"/api/profiles", draft, nil); err != nil {
			return nil, fmt.Errorf("create profile %d: %w", i+1, err)
		}
		created++
	}

	listed, err := countProfiles(ctx, client, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if listed < created {
		return nil, fmt.Errorf("listing shows %d profiles, expected at least %d", listed, created)
	}

	return &Result{Created: created, Listed: listed, Elapsed: time.Since(start)}, nil
}

func login(ctx context.Context, client *http.Client, cfg Config) error {
	body := map[string]string{"username": cfg.Username, "password": cfg.Password}
	if err := postJSON(ctx, client, cfg.BaseURL+"/api/login", body, nil); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func countProfiles(ctx context.Context, client *http.Client, baseURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/profiles", nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("list profiles: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Success  bool              `json:"success"`
		Profiles []json.RawMessage `json:"profiles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode listing: %w", err)
	}
	if !out.Success {
		return 0, fmt.Errorf("listing failed with status %d", resp.StatusCode)
	}
	return len(out.Profiles), nil
}

func postJSON(ctx context.Context, client *http.Client, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, payload)
	}
	if !envelope.Success {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, envelope.Error)
	}
	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

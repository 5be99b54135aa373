// Package main implements a standalone seed script that populates a running
// Paperleaf API with realistic test data: a handful of reader accounts, a
// shelf of books, and a spread of reviews so the catalog shows non-trivial
// average ratings. Everything goes through the public HTTP API so the seed
// exercises the same paths real clients do.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func httpPost(url, token string, body any) (map[string]any, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return result, nil
}

type seedBook struct {
	Title  string
	Author string
	Genre  string
}

var seedBooks = []seedBook{
	{"The Left Hand of Darkness", "Ursula K. Le Guin", "Science Fiction"},
	{"Dune", "Frank Herbert", "Science Fiction"},
	{"Hyperion", "Dan Simmons", "Science Fiction"},
	{"The Name of the Wind", "Patrick Rothfuss", "Fantasy"},
	{"The Fifth Season", "N. K. Jemisin", "Fantasy"},
	{"Piranesi", "Susanna Clarke", "Fantasy"},
	{"The Big Sleep", "Raymond Chandler", "Mystery"},
	{"Gone Girl", "Gillian Flynn", "Mystery"},
	{"The Remains of the Day", "Kazuo Ishiguro", "Literary Fiction"},
	{"Beloved", "Toni Morrison", "Literary Fiction"},
	{"Educated", "Tara Westover", "Memoir"},
	{"The Soul of a New Machine", "Tracy Kidder", "Nonfiction"},
}

var seedUsers = []string{"avid_reader", "night_owl_books", "margin_scribbler", "dog_eared", "paper_cut"}

var reviewTexts = []string{
	"Could not put it down, finished it in two sittings.",
	"Slow to start but the back half more than makes up for it.",
	"The prose alone is worth the price of admission.",
	"Not quite what the blurb promised, but a solid read.",
	"I will be thinking about this one for a long time.",
	"Reread it immediately after finishing. No regrets.",
}

func main() {
	base := getEnv("PAPERLEAF_URL", "http://localhost:8080")
	password := getEnv("SEED_PASSWORD", "paperleaf-seed")

	log.Printf("seeding Paperleaf at %s", base)

	// Register the seed accounts. An ALREADY_EXISTS response means a prior
	// seed run created the account, so fall back to logging in.
	tokens := make([]string, 0, len(seedUsers))
	for _, username := range seedUsers {
		creds := map[string]any{"username": username, "password": password}
		resp, err := httpPost(base+"/signup", "", creds)
		if err != nil {
			resp, err = httpPost(base+"/login", "", creds)
			if err != nil {
				log.Fatalf("sign up or log in %s: %v", username, err)
			}
		}
		token, _ := resp["token"].(string)
		if token == "" {
			log.Fatalf("no token in response for %s", username)
		}
		tokens = append(tokens, token)
		log.Printf("  user %s ready", username)
	}

	// Add the books under the first account.
	bookIDs := make([]string, 0, len(seedBooks))
	for _, b := range seedBooks {
		resp, err := httpPost(base+"/books", tokens[0], map[string]any{
			"title":  b.Title,
			"author": b.Author,
			"genre":  b.Genre,
		})
		if err != nil {
			log.Fatalf("add book %q: %v", b.Title, err)
		}
		id, _ := resp["id"].(string)
		if id == "" {
			log.Fatalf("no id in response for book %q", b.Title)
		}
		bookIDs = append(bookIDs, id)
		log.Printf("  book %q (%s)", b.Title, b.Genre)
	}

	// Scatter 2-4 reviews per book across the seed accounts.
	total := 0
	for _, bookID := range bookIDs {
		for i := 0; i < 2+rand.Intn(3); i++ {
			token := tokens[rand.Intn(len(tokens))]
			_, err := httpPost(fmt.Sprintf("%s/reviews/%s", base, bookID), token, map[string]any{
				"rating":      2 + rand.Intn(4),
				"review_text": reviewTexts[rand.Intn(len(reviewTexts))],
			})
			if err != nil {
				log.Fatalf("add review for book %s: %v", bookID, err)
			}
			total++
		}
	}

	log.Printf("seed complete: %d users, %d books, %d reviews", len(seedUsers), len(bookIDs), total)
}

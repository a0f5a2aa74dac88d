// Command smoke drives a running persona server through generate and every
// download format.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:5000", "server base URL")
	username := flag.String("user", "spez", "reddit username to generate")
	flag.Parse()

	client := &http.Client{Timeout: 3 * time.Minute}

	fmt.Println("Starting smoke test...")

	fmt.Println("1. Generating persona...")
	form := url.Values{"username": {*username}}
	resp, err := client.Post(*baseURL+"/generate", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		fail("generate", err)
	}
	body, err := read(resp)
	if err != nil {
		fail("generate", err)
	}

	var persona struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &persona); err != nil || persona.ID == "" {
		fail("generate", fmt.Errorf("unexpected response: %s", body))
	}
	fmt.Printf("PASSED: generate (id=%s, name=%s)\n", persona.ID, persona.Name)

	for i, format := range []string{"json", "jpg", "pdf"} {
		fmt.Printf("%d. Downloading %s...\n", i+2, format)
		resp, err := client.Get(fmt.Sprintf("%s/download/%s/%s", *baseURL, persona.ID, format))
		if err != nil {
			fail("download "+format, err)
		}
		data, err := read(resp)
		if err != nil {
			fail("download "+format, err)
		}
		fmt.Printf("PASSED: download %s (%d bytes, %s)\n", format, len(data), resp.Header.Get("Content-Type"))
	}
}

func read(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

func fail(step string, err error) {
	fmt.Printf("FAILED: %s: %v\n", step, err)
	os.Exit(1)
}

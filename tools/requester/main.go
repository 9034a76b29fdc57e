package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

var baseURL string

func main() {
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "service base url")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}

	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(func() { doRequest(client) })
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func doRequest(client *http.Client) {
	var (
		req *http.Request
		err error
	)

	switch rand.Intn(6) {
	case 0:
		req, err = http.NewRequest(http.MethodGet, baseURL+"/orders", nil)
	case 1:
		body, _ := json.Marshal(map[string]any{
			"customer_name": "Load Test",
			"item_name":     "Cable",
			"quantity":      rand.Intn(3) + 1,
			"total_price":   9.99,
		})
		req, err = http.NewRequest(http.MethodPost, baseURL+"/orders", bytes.NewReader(body))
	case 2:
		// malformed id
		req, err = http.NewRequest(http.MethodGet, baseURL+"/orders/abc", nil)
	default:
		req, err = http.NewRequest(http.MethodGet, fmt.Sprintf("%s/orders/%d", baseURL, rand.Intn(20)+1), nil)
	}
	if err != nil {
		fmt.Println("request error:", err)
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("request error:", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	fmt.Println(req.Method, req.URL.Path, "->", resp.Status)
}

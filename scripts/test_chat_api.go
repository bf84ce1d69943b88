package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const (
	baseURL   = "http://localhost:3002/api"
	sessionID = "smoke-test"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout; the LLM call can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func chat(message string) {
	resp, body, err := sendRequest("POST", "/chat/v1", map[string]interface{}{
		"message":    message,
		"session_id": sessionID,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	prettyPrint(parsed)
}

func main() {
	color.Cyan("Starting Living Resume Chat API Test\n")

	color.Yellow("\n1. Direct answer: projects")
	chat("Tell me about your projects")

	color.Yellow("\n2. Direct answer: bio")
	chat("Who is Varun?")

	color.Yellow("\n3. Command: tone")
	chat("set tone to formal")

	color.Yellow("\n4. Command: language")
	chat("speak in french")

	color.Yellow("\n5. Fallback: RAG + LLM")
	chat("What did you build with computer vision?")

	color.Yellow("\n6. Session state")
	resp, body, err := sendRequest("GET", "/chat/v1/session/"+sessionID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var stateResp map[string]interface{}
	json.Unmarshal(body, &stateResp)
	prettyPrint(stateResp)

	color.Yellow("\n7. Usage stats")
	resp, body, err = sendRequest("GET", "/chat/v1/stats", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var statsResp map[string]interface{}
	json.Unmarshal(body, &statsResp)
	prettyPrint(statsResp)

	color.Cyan("\nDone.")
}

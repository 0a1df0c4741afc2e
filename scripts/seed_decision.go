// seed_decision.go — standalone script to seed a sample decision via the Clarity API
// and run a scoring pass on it.
//
// Usage:
//
//	go run scripts/seed_decision.go -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
)

type criterion struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

type option struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Scores     map[string]int `json:"scores"`
	IsHighRisk bool           `json:"is_high_risk"`
}

type decision struct {
	Title      string      `json:"title"`
	Criteria   []criterion `json:"criteria"`
	Options    []option    `json:"options"`
	RiskFactor int         `json:"risk_factor"`
}

func main() {
	apiURL := flag.String("api", "http://localhost:8700", "Clarity API base URL")
	dryRun := flag.Bool("dry-run", false, "print the decision without posting")
	flag.Parse()

	d := decision{
		Title: "Q3 Platform Choice",
		Criteria: []criterion{
			{ID: "impact", Name: "Business Impact", Weight: 8},
			{ID: "cost", Name: "Cost", Weight: 5},
			{ID: "speed", Name: "Time to Market", Weight: 6},
		},
		Options: []option{
			{ID: "build", Name: "Build In-House", Scores: map[string]int{"impact": 9, "cost": 3, "speed": 4}},
			{ID: "buy", Name: "Buy SaaS", Scores: map[string]int{"impact": 6, "cost": 7, "speed": 9}},
			{ID: "partner", Name: "Partner", Scores: map[string]int{"impact": 7, "cost": 6, "speed": 6}, IsHighRisk: true},
		},
		RiskFactor: 15,
	}

	if *dryRun {
		out, _ := json.MarshalIndent(d, "", "  ")
		fmt.Println(string(out))
		return
	}

	body, err := json.Marshal(d)
	if err != nil {
		log.Fatalf("marshal decision: %v", err)
	}

	resp, err := http.Post(*apiURL+"/api/v1/decisions", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("post decision: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("create failed: %d %s", resp.StatusCode, string(respBody))
	}

	var created struct {
		ID string `json:"decision_id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		log.Fatalf("decode create response: %v", err)
	}
	fmt.Printf("created decision %s\n", created.ID)

	scoreResp, err := http.Post(*apiURL+"/api/v1/decisions/"+created.ID+"/score", "application/json", nil)
	if err != nil {
		log.Fatalf("score decision: %v", err)
	}
	defer scoreResp.Body.Close()

	scoreBody, _ := io.ReadAll(scoreResp.Body)
	if scoreResp.StatusCode != http.StatusOK {
		log.Fatalf("score failed: %d %s", scoreResp.StatusCode, string(scoreBody))
	}
	fmt.Println(string(scoreBody))
}

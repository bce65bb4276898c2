package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"google.golang.org/api/iterator"

	iqfit "github.com/busecoban/the-iq-fit-solver-v4"
)

type SolveRequest struct {
	Workers        int  `json:"workers"`
	MaxSolutions   int  `json:"maxSolutions"`
	SelfCheck      bool `json:"selfCheck"`
	Archive        bool `json:"archive"`
	IncludeHistory bool `json:"includeHistory"`
}

type SolveResponse struct {
	Success        bool        `json:"success"`
	Workers        int         `json:"workers"`
	Total          int         `json:"total"`
	ElapsedSeconds float64     `json:"elapsedSeconds"`
	PerWorker      []int       `json:"perWorker,omitempty"`
	Solutions      []string    `json:"solutions,omitempty"`
	History        []RunRecord `json:"history,omitempty"`
	Error          string      `json:"error,omitempty"`
}

type RunRecord struct {
	Workers        int       `json:"workers" bigquery:"workers"`
	Total          int       `json:"total" bigquery:"total"`
	ElapsedSeconds float64   `json:"elapsedSeconds" bigquery:"elapsed_seconds"`
	StartedAt      time.Time `json:"startedAt" bigquery:"started_at"`
}

func bigqueryProject() string {
	if project := os.Getenv("GCP_PROJECT"); project != "" {
		return project
	}
	return "iqfit-x"
}

func archiveRun(ctx context.Context, rec RunRecord) error {
	client, err := bigquery.NewClient(ctx, bigqueryProject())
	if err != nil {
		return fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	inserter := client.Dataset("iqfit").Table("runs").Inserter()
	if err := inserter.Put(ctx, rec); err != nil {
		return fmt.Errorf("inserter.Put: %w", err)
	}
	return nil
}

func recentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	client, err := bigquery.NewClient(ctx, bigqueryProject())
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	query := fmt.Sprintf("SELECT workers, total, elapsed_seconds, started_at FROM `%s.iqfit.runs` ORDER BY started_at DESC LIMIT %d", bigqueryProject(), limit)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var runs []RunRecord
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		workers, ok := row[0].(int64)
		if !ok {
			return nil, fmt.Errorf("row[0] is not an int64: %v", row[0])
		}
		total, ok := row[1].(int64)
		if !ok {
			return nil, fmt.Errorf("row[1] is not an int64: %v", row[1])
		}
		elapsed, ok := row[2].(float64)
		if !ok {
			return nil, fmt.Errorf("row[2] is not a float64: %v", row[2])
		}
		started, ok := row[3].(time.Time)
		if !ok {
			return nil, fmt.Errorf("row[3] is not a time: %v", row[3])
		}
		runs = append(runs, RunRecord{
			Workers:        int(workers),
			Total:          int(total),
			ElapsedSeconds: elapsed,
			StartedAt:      started,
		})
	}
	return runs, nil
}

func selfCheck(res *iqfit.Result) error {
	verifier, err := iqfit.NewVerifier()
	if err != nil {
		return fmt.Errorf("iqfit.NewVerifier: %w", err)
	}
	solutions := res.Solutions()
	n := min(len(solutions), 100)
	for i, s := range solutions[:n] {
		if err := verifier.Verify(s); err != nil {
			return fmt.Errorf("solution %d: %w", i, err)
		}
	}
	return nil
}

func execute(ctx context.Context, req SolveRequest) (SolveResponse, error) {
	if req.Workers < 1 {
		return SolveResponse{}, fmt.Errorf("workers must be at least 1")
	}
	if req.Workers > 64 {
		return SolveResponse{}, fmt.Errorf("workers must be at most 64")
	}
	if req.MaxSolutions < 0 {
		return SolveResponse{}, fmt.Errorf("maxSolutions must not be negative")
	}
	if req.MaxSolutions > 10 {
		return SolveResponse{}, fmt.Errorf("maxSolutions must be at most 10")
	}

	started := time.Now().UTC()
	res, err := iqfit.Enumerate(req.Workers)
	if err != nil {
		return SolveResponse{}, fmt.Errorf("iqfit.Enumerate: %w", err)
	}
	fmt.Printf("Enumerated %d solutions with %d workers in %v\n", res.Total, res.Workers, res.Elapsed)

	if req.SelfCheck {
		if err := selfCheck(res); err != nil {
			return SolveResponse{}, fmt.Errorf("selfCheck: %w", err)
		}
	}

	resp := SolveResponse{
		Workers:        res.Workers,
		Total:          res.Total,
		ElapsedSeconds: res.Elapsed.Seconds(),
		PerWorker:      res.PerWorker,
	}
	for _, s := range res.Solutions()[:min(res.Total, req.MaxSolutions)] {
		resp.Solutions = append(resp.Solutions, s.Repr())
	}

	if req.Archive {
		rec := RunRecord{
			Workers:        res.Workers,
			Total:          res.Total,
			ElapsedSeconds: res.Elapsed.Seconds(),
			StartedAt:      started,
		}
		if err := archiveRun(ctx, rec); err != nil {
			return SolveResponse{}, fmt.Errorf("archiveRun: %w", err)
		}
	}

	if req.IncludeHistory {
		history, err := recentRuns(ctx, 10)
		if err != nil {
			return SolveResponse{}, fmt.Errorf("recentRuns: %w", err)
		}
		resp.History = history
	}

	return resp, nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func solveBoard(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	setCORSHeaders(w)

	// Handle OPTIONS request for CORS preflight
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req SolveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fmt.Printf("Error parsing JSON body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		response := SolveResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	response, err := execute(r.Context(), req)
	response.Success = err == nil

	if err != nil {
		response.Error = err.Error()
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Printf("Error marshaling response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/solve", solveBoard)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}

// README: Bench cases: environment, schema, webhook and chat API checks, plus load.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	dealershipID := r.cfg.DealershipID
	return []TestCase{
		{Name: "Env: Postgres connect", Run: pingDB},
		{Name: "Env: Redis connect", Run: pingRedis},
		{Name: "Schema: migration tables exist", Run: tablesExist},

		getCase("API: health", base+"/health", http.StatusOK),
		getCase("API: metrics", base+"/metrics", http.StatusOK),
		getCase("Webhook: wrong verify token -> 403", base+"/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=bench-wrong&hub.challenge=1", http.StatusForbidden),
		{Name: "Webhook: verify handshake echoes challenge", Run: verifyHandshake},
		postCase("Webhook: invalid payload -> 400", base+"/whatsapp/webhook", map[string]any{"foo": 1}, http.StatusBadRequest),
		postCase("Webhook: status-only payload -> ignored", base+"/whatsapp/webhook", statusOnlyPayload(), http.StatusOK),

		postCase("Chat: missing fields -> 400", base+"/api/chat", map[string]any{}, http.StatusBadRequest),
		postCase("Chat: unknown dealership -> 404", base+"/api/chat", map[string]any{
			"dealership_id": int64(1 << 40),
			"sender_id":     "bench",
			"text":          "oi",
		}, http.StatusNotFound),
		postCase("Chat: decline button", base+"/api/chat", map[string]any{
			"dealership_id": dealershipID,
			"sender_id":     "bench",
			"action_id":     "decline",
		}, http.StatusOK),
		postCase("Chat: free text search", base+"/api/chat", map[string]any{
			"dealership_id": dealershipID,
			"sender_id":     "bench",
			"text":          "quero um carro até 100 mil",
		}, http.StatusOK),

		{
			Name: "Load: chat decline throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return load(ctx, r, base+"/api/chat", map[string]any{
					"dealership_id": dealershipID,
					"sender_id":     "bench-load",
					"action_id":     "decline",
				})
			},
		},
	}
}

func pingDB(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusFail, Note: "db not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.db.Ping(ctx); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func pingRedis(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: statusFail, Note: "redis not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func tablesExist(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusFail, Note: "db not configured"}
	}
	tables, err := migrationTables(r.cfg.Migrations)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	for _, t := range tables {
		var exists bool
		err := r.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
			t,
		).Scan(&exists)
		if err != nil {
			return Result{Status: statusFail, Note: err.Error()}
		}
		if !exists {
			return Result{Status: statusFail, Note: "missing table: " + t}
		}
	}
	return Result{Status: statusPass, Note: strings.Join(tables, ",")}
}

func verifyHandshake(ctx context.Context, r *Runner) Result {
	if r.cfg.VerifyToken == "" {
		return Result{Status: statusSkip, Note: "no verify token"}
	}
	url := fmt.Sprintf("%s/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=%s&hub.challenge=bench-42", r.cfg.BaseURL, r.cfg.VerifyToken)
	status, body, latency, err := r.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusOK || body != "bench-42" {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d body=%q", status, body)}
	}
	return Result{Status: statusPass, Latency: latency}
}

func statusOnlyPayload() map[string]any {
	return map[string]any{
		"object": "whatsapp_business_account",
		"entry": []any{map[string]any{
			"changes": []any{map[string]any{
				"value": map[string]any{
					"statuses": []any{map[string]any{"id": "bench", "status": "delivered"}},
				},
			}},
		}},
	}
}

func getCase(name, url string, want int) TestCase {
	return httpCase(name, http.MethodGet, url, nil, want)
}

func postCase(name, url string, body any, want int) TestCase {
	return httpCase(name, http.MethodPost, url, body, want)
}

func httpCase(name, method, url string, body any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			status, _, latency, err := r.do(ctx, method, url, body)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			note := fmt.Sprintf("status=%d", status)
			if status != want {
				return Result{Status: statusFail, Latency: latency, Note: note}
			}
			return Result{Status: statusPass, Latency: latency, Note: note}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, string, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, "", 0, err
		}
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, "", 0, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw), time.Since(start), nil
}

func load(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				mu.Lock()
				if err != nil || resp.StatusCode != http.StatusOK {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
				if err == nil {
					_, _ = io.Copy(io.Discard, resp.Body)
					resp.Body.Close()
				}
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: fmt.Sprintf("no successful requests, errors=%d", errCount)}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

var createTable = regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)

// migrationTables lists every table created by the *.sql files in dir.
func migrationTables(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	var tables []string
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		for _, m := range createTable.FindAllStringSubmatch(string(b), -1) {
			tables = append(tables, m[1])
		}
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables found under %s", dir)
	}
	return tables, nil
}

package llm

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/exec"
	"strings"
	"time"
)

// Supervisor handles one-shot startup of the local model service: a health
// probe, a fire-and-forget spawn of the serving process, and model presence
// checks. The process is not supervised after startup.
type Supervisor struct {
	BaseURL string

	httpClient *http.Client
}

func NewSupervisor(baseURL string) *Supervisor {
	return &Supervisor{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
}

// Healthy reports whether the service answers its tags endpoint.
func (s *Supervisor) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Start spawns `ollama serve` detached from this process.
func (s *Supervisor) Start() error {
	cmd := exec.Command("ollama", "serve")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ollama: %w", err)
	}
	// Reap the process if it ever exits so it doesn't linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// EnsureRunning checks the service and, if unreachable, starts it and polls
// for up to ten seconds until it answers.
func (s *Supervisor) EnsureRunning(ctx context.Context) error {
	if s.Healthy(ctx) {
		return nil
	}

	log.Printf("Local model service not reachable at %s, starting it", s.BaseURL)
	if err := s.Start(); err != nil {
		return err
	}

	for i := 0; i < 10; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
		if s.Healthy(ctx) {
			return nil
		}
	}
	return fmt.Errorf("service at %s did not become reachable; run 'ollama serve' manually", s.BaseURL)
}

// ModelExists checks `ollama list` for the model name (tag ignored).
func (s *Supervisor) ModelExists(ctx context.Context, model string) bool {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(cctx, "ollama", "list").Output()
	if err != nil {
		return false
	}
	name := strings.SplitN(model, ":", 2)[0]
	return strings.Contains(string(out), name)
}

// EnsureModel pulls the model when it is not present locally.
func (s *Supervisor) EnsureModel(ctx context.Context, model string) error {
	if s.ModelExists(ctx, model) {
		return nil
	}

	log.Printf("Pulling model %s", model)
	cctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	out, err := exec.CommandContext(cctx, "ollama", "pull", model).CombinedOutput()
	if err != nil {
		return fmt.Errorf("pull model %s: %w: %s", model, err, strings.TrimSpace(string(out)))
	}
	log.Printf("Model %s ready", model)
	return nil
}

// internal/ollama/manager.go
// Package ollama mediates every interaction with the local Ollama daemon
// and its command-line counterpart. All operations fold external faults
// into their return values; nothing here propagates an error to the
// caller, because the surrounding layers must stay responsive regardless
// of daemon availability.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nerrospl/promptforge/internal/appconfig"
	"github.com/nerrospl/promptforge/internal/logging"
)

// ModelDescriptor describes one installed model from a listing call.
type ModelDescriptor struct {
	Name       string  `json:"name"`
	SizeBytes  int64   `json:"size_bytes"`
	SizeGB     float64 `json:"size_gb"`
	ModifiedAt string  `json:"modified"`
}

// Outcome is the terminal result of one lifecycle operation. An operation
// either fully succeeds or fully fails; no partial state is exposed.
type Outcome struct {
	Success bool
	Message string
}

// ProgressFunc receives one pull progress event per non-blank output line.
// A percent of 0 means unknown, not zero progress. Delivery is synchronous
// and in line order from the goroutine running PullModel, so callbacks
// must stay cheap.
type ProgressFunc func(percent int, message string)

// percentPattern matches a progress percentage in pull tool output.
var percentPattern = regexp.MustCompile(`(\d+)%`)

// Manager exposes status checks and model-management operations against a
// single daemon. It holds no mutable state, so concurrent calls from
// different goroutines are independent and safe.
type Manager struct {
	baseURL       string
	tool          string
	client        *http.Client
	checkTimeout  time.Duration
	unloadTimeout time.Duration
	deleteTimeout time.Duration
	logf          func(format string, args ...any)
}

// New constructs a Manager from the application configuration.
func New(cfg appconfig.Config) *Manager {
	return &Manager{
		baseURL:       cfg.URL(),
		tool:          cfg.Tool(),
		client:        &http.Client{},
		checkTimeout:  cfg.CheckTimeout(),
		unloadTimeout: cfg.UnloadTimeout(),
		deleteTimeout: cfg.DeleteTimeout(),
		logf:          logging.LogEvent,
	}
}

// tagsResponse is the loosely structured body of GET /api/tags.
type tagsResponse struct {
	Models []struct {
		Name       string `json:"name"`
		Size       int64  `json:"size"`
		ModifiedAt string `json:"modified_at"`
	} `json:"models"`
}

// CheckRunning reports whether the daemon answers its listing endpoint
// with HTTP 200 within a short timeout. It never returns an error;
// any fault reads as "not running".
func (m *Manager) CheckRunning() bool {
	ctx, cancel := context.WithTimeout(context.Background(), m.checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ListModels returns the installed models in listing order. Any network or
// parse fault yields an empty slice: at this layer an empty result is
// indistinguishable from "no models installed", and callers must not
// assume otherwise. Faults are logged, never returned.
func (m *Manager) ListModels() []ModelDescriptor {
	resp, err := m.client.Get(m.baseURL + "/api/tags")
	if err != nil {
		m.logf("ollama: could not list models: %v", err)
		return []ModelDescriptor{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.logf("ollama: /api/tags returned %s", resp.Status)
		return []ModelDescriptor{}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		m.logf("ollama: error reading listing response: %v", err)
		return []ModelDescriptor{}
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		m.logf("ollama: error parsing listing response: %v", err)
		return []ModelDescriptor{}
	}

	descriptors := make([]ModelDescriptor, 0, len(tags.Models))
	for _, entry := range tags.Models {
		name := entry.Name
		if name == "" {
			name = "unknown"
		}
		modified := entry.ModifiedAt
		if modified == "" {
			modified = "?"
		}
		descriptors = append(descriptors, ModelDescriptor{
			Name:       name,
			SizeBytes:  entry.Size,
			SizeGB:     roundGB(entry.Size),
			ModifiedAt: modified,
		})
	}
	return descriptors
}

// roundGB converts a byte count to gibibytes rounded to two decimals.
func roundGB(sizeBytes int64) float64 {
	gb := float64(sizeBytes) / (1 << 30)
	return math.Round(gb*100) / 100
}

// PullModel downloads a model by running the external pull tool and
// streaming its combined output. Every non-blank line is delivered to
// onProgress with the last "<digits>%" on the line, or 0 when the line
// carries no percentage. The call blocks until the subprocess exits; an
// exit code of 0 yields success, anything else a failure outcome. No
// retry is attempted here.
func (m *Manager) PullModel(modelName string, onProgress ProgressFunc) Outcome {
	m.logf("ollama: pulling model %s", modelName)

	cmd := exec.Command(m.tool, "pull", modelName)

	// One pipe carries stdout and stderr interleaved, matching how the
	// tool renders progress on a terminal.
	reader, writer, err := os.Pipe()
	if err != nil {
		return Outcome{Success: false, Message: fmt.Sprintf("could not create output pipe: %v", err)}
	}
	cmd.Stdout = writer
	cmd.Stderr = writer

	if err := cmd.Start(); err != nil {
		writer.Close()
		reader.Close()
		msg := fmt.Sprintf("could not start %s pull: %v", m.tool, err)
		m.logf("ollama: %s", msg)
		return Outcome{Success: false, Message: msg}
	}
	// The parent's write end must close so the scanner sees EOF when the
	// child exits.
	writer.Close()
	defer reader.Close()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if onProgress != nil {
			onProgress(extractPercent(line), line)
		}
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		msg := fmt.Sprintf("error reading pull output: %v", err)
		m.logf("ollama: %s", msg)
		return Outcome{Success: false, Message: msg}
	}

	if err := cmd.Wait(); err != nil {
		var msg string
		if exitErr, ok := err.(*exec.ExitError); ok {
			msg = fmt.Sprintf("pull failed (exit code %d)", exitErr.ExitCode())
		} else {
			msg = fmt.Sprintf("pull failed: %v", err)
		}
		m.logf("ollama: %s", msg)
		return Outcome{Success: false, Message: msg}
	}

	m.logf("ollama: pulled %s", modelName)
	return Outcome{Success: true, Message: fmt.Sprintf("pulled %s", modelName)}
}

// extractPercent returns the last "<digits>%" value on a line, or 0 when
// the line carries none.
func extractPercent(line string) int {
	matches := percentPattern.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return 0
	}
	value, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return 0
	}
	return value
}

// UnloadModel asks the daemon to evict a model from memory by issuing an
// empty generate request with keep_alive set to 0. The call is
// fire-and-forget: it reports whether the request was accepted, not
// whether eviction occurred.
func (m *Manager) UnloadModel(modelName string) Outcome {
	m.logf("ollama: unloading %s", modelName)

	payload := map[string]any{
		"model":      modelName,
		"prompt":     "",
		"keep_alive": 0,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{Success: false, Message: fmt.Sprintf("could not encode unload request: %v", err)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.unloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return Outcome{Success: false, Message: fmt.Sprintf("could not build unload request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		msg := fmt.Sprintf("unload failed: %v", err)
		m.logf("ollama: %s", msg)
		return Outcome{Success: false, Message: msg}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		msg := fmt.Sprintf("unload failed: %s", strings.TrimSpace(string(respBody)))
		if strings.TrimSpace(string(respBody)) == "" {
			msg = fmt.Sprintf("unload failed: %s", resp.Status)
		}
		m.logf("ollama: %s", msg)
		return Outcome{Success: false, Message: msg}
	}

	m.logf("ollama: unloaded %s", modelName)
	return Outcome{Success: true, Message: fmt.Sprintf("unloaded %s", modelName)}
}

// DeleteModel removes a model's on-disk weights by invoking the external
// remove tool synchronously under a bounded timeout. Captured stderr text
// becomes the failure message on nonzero exit.
func (m *Manager) DeleteModel(modelName string) Outcome {
	m.logf("ollama: deleting %s", modelName)

	ctx, cancel := context.WithTimeout(context.Background(), m.deleteTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, m.tool, "rm", modelName)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		msg = fmt.Sprintf("delete failed: %s", msg)
		m.logf("ollama: %s", msg)
		return Outcome{Success: false, Message: msg}
	}

	m.logf("ollama: deleted %s", modelName)
	return Outcome{Success: true, Message: fmt.Sprintf("deleted %s", modelName)}
}

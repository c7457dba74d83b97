package lua

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/drake/typewriter/internal/logging"
)

// testCase represents a single test case from JSON
type testCase struct {
	Name           string   `json:"name"`
	SetupLua       any      `json:"setup_lua"`
	ExpectedError  string   `json:"expected_error,omitempty"`
	ExpectedText   *string  `json:"expected_text,omitempty"`
	ExpectedCursor string   `json:"expected_cursor,omitempty"`
	ExpectedPrints []string `json:"expected_prints,omitempty"`
	ExpectedStatus []string `json:"expected_status,omitempty"`
}

type testDataFile struct {
	Tests []testCase `json:"tests"`
}

// setupTest creates an engine with the core scripts loaded.
func setupTest(t *testing.T) (*Engine, *MockHost) {
	t.Helper()

	host := NewMockHost(t)
	engine := NewEngine(host, logging.Nop())
	if err := engine.Init(); err != nil {
		t.Fatal("Failed to initialize engine:", err)
	}
	if err := engine.LoadCore(); err != nil {
		t.Fatal("Failed to load core scripts:", err)
	}
	t.Cleanup(engine.Close)

	return engine, host
}

func loadTestData(t *testing.T, filename string) testDataFile {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("Failed to read test data %s: %v", filename, err)
	}

	var testData testDataFile
	if err := json.Unmarshal(data, &testData); err != nil {
		t.Fatalf("Failed to parse test data %s: %v", filename, err)
	}
	return testData
}

// setupChunks handles both string and []string Lua setup code
func setupChunks(setup any) []string {
	switch lua := setup.(type) {
	case string:
		return []string{lua}
	case []any:
		out := make([]string, 0, len(lua))
		for _, cmd := range lua {
			out = append(out, cmd.(string))
		}
		return out
	}
	return nil
}

func executeTest(t *testing.T, tt testCase) {
	t.Helper()
	t.Run(tt.Name, func(t *testing.T) {
		engine, host := setupTest(t)

		var runErr error
		for i, chunk := range setupChunks(tt.SetupLua) {
			if runErr = engine.DoString(fmt.Sprintf("setup%d", i), chunk); runErr != nil {
				break
			}
		}

		if tt.ExpectedError != "" {
			if runErr == nil || !strings.Contains(runErr.Error(), tt.ExpectedError) {
				t.Fatalf("expected error containing %q, got %v", tt.ExpectedError, runErr)
			}
		} else if runErr != nil {
			t.Fatalf("Failed to execute setup Lua code: %v", runErr)
		}

		host.Drain(t)

		if tt.ExpectedText != nil {
			if got := host.Text(); got != *tt.ExpectedText {
				t.Errorf("text: expected %q, got %q", *tt.ExpectedText, got)
			}
		}
		if tt.ExpectedCursor != "" {
			if got := host.Typewriter().Options().Cursor; got != tt.ExpectedCursor {
				t.Errorf("cursor: expected %q, got %q", tt.ExpectedCursor, got)
			}
		}
		if tt.ExpectedPrints != nil {
			assertLines(t, "print", host.DrainPrints(), tt.ExpectedPrints)
		}
		if tt.ExpectedStatus != nil {
			assertLines(t, "status", host.StatusCalls, tt.ExpectedStatus)
		}
	})
}

func assertLines(t *testing.T, kind string, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Errorf("expected %d %s calls %q, got %d %q", len(expected), kind, expected, len(got), got)
		return
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("%s %d: expected %q, got %q", kind, i, expected[i], got[i])
		}
	}
}

// TestFeatures runs all feature tests from JSON files
func TestFeatures(t *testing.T) {
	files, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatalf("Failed to read testdata directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), "_tests.json") {
			continue
		}
		feature := strings.TrimSuffix(file.Name(), "_tests.json")
		t.Run(feature, func(t *testing.T) {
			for _, tt := range loadTestData(t, file.Name()).Tests {
				executeTest(t, tt)
			}
		})
	}
}

func TestTimers(t *testing.T) {
	engine, host := setupTest(t)

	err := engine.DoString("timers", `
		fired = 0
		once = typewriter.after(0.5, function() fired = fired + 1 end)
		tick = typewriter.every(2, function() fired = fired + 10 end)
	`)
	if err != nil {
		t.Fatal(err)
	}

	if len(host.ScheduledTimers) != 2 {
		t.Fatalf("expected 2 timers, got %d", len(host.ScheduledTimers))
	}
	once, every := host.ScheduledTimers[0], host.ScheduledTimers[1]
	if once.Duration != 500*time.Millisecond || once.Repeat {
		t.Errorf("after timer = %+v", once)
	}
	if every.Duration != 2*time.Second || !every.Repeat {
		t.Errorf("every timer = %+v", every)
	}

	engine.OnTimer(once.ID, false)
	engine.OnTimer(once.ID, false)
	engine.OnTimer(every.ID, true)
	engine.OnTimer(every.ID, true)

	if got := engine.L.GetGlobal("fired").String(); got != "21" {
		t.Errorf("fired = %s, want 21", got)
	}

	if err := engine.DoString("cancel", "typewriter.cancel(tick)"); err != nil {
		t.Fatal(err)
	}
	engine.OnTimer(every.ID, true)
	if got := engine.L.GetGlobal("fired").String(); got != "21" {
		t.Errorf("cancelled timer ran, fired = %s", got)
	}
	if len(host.CancelledTimers) != 1 || host.CancelledTimers[0] != every.ID {
		t.Errorf("cancelled = %v", host.CancelledTimers)
	}
}

func TestTimerErrorReachesHook(t *testing.T) {
	engine, host := setupTest(t)

	if err := engine.DoString("bad", `typewriter.after(1, function() error("boom") end)`); err != nil {
		t.Fatal(err)
	}
	engine.OnTimer(host.ScheduledTimers[0].ID, false)

	prints := host.DrainPrints()
	if len(prints) != 1 || !strings.HasPrefix(prints[0], "error: timer:") || !strings.Contains(prints[0], "boom") {
		t.Errorf("prints = %q", prints)
	}
}

func TestDoFile(t *testing.T) {
	engine, host := setupTest(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "helper.lua"), []byte(`return { word = "module" }`), 0o644); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "init.lua")
	src := `local helper = require("helper")
typewriter.type_string(helper.word).start()`
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := engine.DoFile(script); err != nil {
		t.Fatal(err)
	}
	host.Drain(t)
	if got := host.Text(); got != "module" {
		t.Errorf("text = %q", got)
	}
}

func TestLifecycleCalls(t *testing.T) {
	engine, host := setupTest(t)

	if err := engine.DoString("life", "typewriter.reload(); typewriter.quit()"); err != nil {
		t.Fatal(err)
	}
	if host.ReloadCalls != 1 || !host.QuitCalled {
		t.Errorf("reload %d, quit %v", host.ReloadCalls, host.QuitCalled)
	}
}

func TestCallErrorReachesHook(t *testing.T) {
	engine, host := setupTest(t)

	if err := engine.DoString("cb", `typewriter.call(function() error("oops") end).start()`); err != nil {
		t.Fatal(err)
	}
	host.Drain(t)

	prints := host.DrainPrints()
	if len(prints) != 1 || !strings.HasPrefix(prints[0], "error: call:") || !strings.Contains(prints[0], "oops") {
		t.Errorf("prints = %q", prints)
	}
}

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig(name string) Config {
	cfg := DefaultConfig(name)
	cfg.FailureThreshold = 3
	cfg.MinRequests = 100
	cfg.Timeout = 50 * time.Millisecond
	return cfg
}

func TestExecuteSuccess(t *testing.T) {
	cb, err := New(testConfig("ok"), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	result, err := cb.Execute(context.Background(), func() (interface{}, error) {
		return "done", nil
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.(string) != "done" {
		t.Errorf("result = %v, want done", result)
	}
	if !cb.IsClosed() {
		t.Error("breaker should stay closed after success")
	}
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb, err := New(testConfig("failing"), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	boom := errors.New("backend down")
	for i := 0; i < 3; i++ {
		if _, err := cb.Execute(context.Background(), func() (interface{}, error) {
			return nil, boom
		}); !errors.Is(err, boom) {
			t.Fatalf("attempt %d: err = %v, want backend error", i, err)
		}
	}

	if !cb.IsOpen() {
		t.Fatal("breaker should open after the failure threshold")
	}

	// Calls are rejected without invoking the function while open.
	called := false
	_, err = cb.Execute(context.Background(), func() (interface{}, error) {
		called = true
		return nil, nil
	})
	if err == nil {
		t.Error("open breaker should reject calls")
	}
	if called {
		t.Error("open breaker must not invoke the function")
	}
}

func TestExecuteWithFallback(t *testing.T) {
	cb, err := New(testConfig("fallback"), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	result, err := cb.ExecuteWithFallback(context.Background(),
		func() (interface{}, error) { return nil, errors.New("primary failed") },
		func(err error) (interface{}, error) { return "fallback", nil },
	)
	if err != nil {
		t.Fatalf("fallback path: %v", err)
	}
	if result.(string) != "fallback" {
		t.Errorf("result = %v, want fallback", result)
	}
}

func TestManagerReusesBreakers(t *testing.T) {
	mgr := NewManager(nil)

	a, err := mgr.GetOrCreate("ocr", testConfig("ocr"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := mgr.GetOrCreate("ocr", testConfig("ocr"))
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if a != b {
		t.Error("same name should return the same breaker")
	}

	if _, ok := mgr.Get("missing"); ok {
		t.Error("unknown name should not resolve")
	}

	if len(mgr.All()) != 1 {
		t.Errorf("manager holds %d breakers, want 1", len(mgr.All()))
	}
}

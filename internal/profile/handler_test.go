package profile_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/k1networth/fieldops/internal/profile"
)

func testLogger() *slog.Logger {
	h := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h).With(
		slog.String("app", "test"),
		slog.String("env", "test"),
	)
}

func newTestServer(initial profile.User) *httptest.Server {
	h := &profile.Handler{Log: testLogger(), Store: profile.NewInMemoryStore(initial)}
	return httptest.NewServer(http.HandlerFunc(h.Handle))
}

func TestGetUser(t *testing.T) {
	srv := newTestServer(profile.User{Name: "Ravi", Mobile: "9876543210", Email: "ravi@example.com", Address: "Pune"})
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var got profile.User
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Ravi" || got.Email != "ravi@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestPutUserReplacesProfile(t *testing.T) {
	srv := newTestServer(profile.User{Name: "Old", Email: "old@example.com", Address: "Old Town"})
	t.Cleanup(srv.Close)

	body := []byte(`{"name":"  New Name ","mobile":"9000000000","email":"new@example.com","address":"New Town"}`)
	req, err := http.NewRequest(http.MethodPut, srv.URL, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected %d, got %d, body=%s", http.StatusOK, resp.StatusCode, string(b))
	}

	var got profile.User
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "New Name" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	if got.Mobile != "9000000000" {
		t.Fatalf("expected mobile stored, got %q", got.Mobile)
	}
}

func TestPutUserValidation400(t *testing.T) {
	srv := newTestServer(profile.User{})
	t.Cleanup(srv.Close)

	cases := []string{
		`{"name":"","email":"a@b.c","address":"x"}`,
		`{"name":"A","email":"","address":"x"}`,
		`{"name":"A","email":"a@b.c","address":"  "}`,
	}

	for _, body := range cases {
		req, err := http.NewRequest(http.MethodPut, srv.URL, bytes.NewReader([]byte(body)))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		_ = resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %s: expected %d, got %d", body, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

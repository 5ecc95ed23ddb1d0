package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	outDir := t.TempDir()
	handler := NewHandler(outDir, "test")
	server := httptest.NewServer(NewServer(handler))
	t.Cleanup(server.Close)

	return server, outDir
}

func TestGetReport_MissingReturns404(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/report")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 before first run, got %d", resp.StatusCode)
	}
}

func TestGetReport_ServesWrittenReport(t *testing.T) {
	server, outDir := newTestServer(t)

	content := `{"version":"test","success":true}`
	if err := os.WriteFile(filepath.Join(outDir, "report.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(server.URL + "/report")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Errorf("Expected JSON content type, got %q", got)
	}
}

func TestGetCalendar(t *testing.T) {
	server, outDir := newTestServer(t)

	ics := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"
	if err := os.WriteFile(filepath.Join(outDir, "combined.ics"), []byte(ics), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("by name", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/calendars/combined")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected 200, got %d", resp.StatusCode)
		}
		if got := resp.Header.Get("Content-Type"); !strings.HasPrefix(got, "text/calendar") {
			t.Errorf("Expected text/calendar, got %q", got)
		}
	})

	t.Run("with extension", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/calendars/combined.ics")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown calendar", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/calendars/nope")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("traversal rejected", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/calendars/..%2Fsecret")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			t.Error("Expected traversal attempt to be rejected")
		}
	})
}

func TestHealthCheck(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tsplit/internal/config"
	"tsplit/internal/logging"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.New()
	cfg.APIBaseURL = baseURL
	cfg.User = "acme"
	cfg.Project = "webshop"
	cfg.Branch = "master"
	cfg.Token = "secret"
	cfg.ArtifactPattern = "*console*"
	return cfg
}

func TestCircleCI_FetchHistory(t *testing.T) {
	t.Run("downloads matching artifacts of recent builds", func(t *testing.T) {
		var sawToken bool
		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/project/github/acme/webshop/tree/master", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("circle-token") == "secret" {
				sawToken = true
			}
			fmt.Fprint(w, `[{"build_num": 41, "status": "success"}, {"build_num": 42, "status": "failed"}]`)
		})
		mux.HandleFunc("/project/github/acme/webshop/41/artifacts", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `[
				{"path": "logs/console-output.txt", "url": "%s/artifact/41"},
				{"path": "report.xml", "url": "%s/artifact/xml"}
			]`, server.URL, server.URL)
		})
		mux.HandleFunc("/project/github/acme/webshop/42/artifacts", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `[{"path": "more/console-output.txt", "url": "%s/artifact/42"}]`, server.URL)
		})
		mux.HandleFunc("/artifact/41", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "(tests/a.js) (100ms)")
		})
		mux.HandleFunc("/artifact/42", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "(tests/b.js) (200ms)")
		})
		mux.HandleFunc("/artifact/xml", func(w http.ResponseWriter, r *http.Request) {
			t.Error("artifact not matching the filter pattern must not be downloaded")
		})

		provider := NewCircleCI(testConfig(server.URL), logging.NewNop())
		text := provider.FetchHistory(context.Background())

		if !strings.Contains(text, "(tests/a.js) (100ms)") {
			t.Errorf("expected first artifact body in history, got %q", text)
		}
		if !strings.Contains(text, "(tests/b.js) (200ms)") {
			t.Errorf("expected second artifact body in history, got %q", text)
		}
		if !sawToken {
			t.Error("expected token to be sent as query parameter")
		}
	})

	t.Run("build listing failure degrades to empty string", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		provider := NewCircleCI(testConfig(server.URL), logging.NewNop())
		if text := provider.FetchHistory(context.Background()); text != "" {
			t.Errorf("expected empty history, got %q", text)
		}
	})

	t.Run("failed downloads are dropped, successes kept", func(t *testing.T) {
		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/project/github/acme/webshop/tree/master", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"build_num": 7, "status": "success"}]`)
		})
		mux.HandleFunc("/project/github/acme/webshop/7/artifacts", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `[
				{"path": "a/console-output.txt", "url": "%s/artifact/ok"},
				{"path": "b/console-output.txt", "url": "%s/artifact/broken"}
			]`, server.URL, server.URL)
		})
		mux.HandleFunc("/artifact/ok", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "(tests/ok.js) (10ms)")
		})
		mux.HandleFunc("/artifact/broken", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		})

		provider := NewCircleCI(testConfig(server.URL), logging.NewNop())
		text := provider.FetchHistory(context.Background())

		if !strings.Contains(text, "ok.js") {
			t.Errorf("expected surviving artifact body, got %q", text)
		}
		if strings.Contains(text, "404") {
			t.Errorf("failed download leaked into history: %q", text)
		}
	})

	t.Run("unparseable listing degrades to empty string", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>not json</html>")
		}))
		defer server.Close()

		provider := NewCircleCI(testConfig(server.URL), logging.NewNop())
		if text := provider.FetchHistory(context.Background()); text != "" {
			t.Errorf("expected empty history, got %q", text)
		}
	})
}

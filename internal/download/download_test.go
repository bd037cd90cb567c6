package download

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestDownloaderGet(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    bool
	}{
		{
			name:       "successful_download",
			statusCode: http.StatusOK,
			body:       "test binary content",
			wantErr:    false,
		},
		{
			name:       "empty_body",
			statusCode: http.StatusOK,
			body:       "",
			wantErr:    false,
		},
		{
			name:       "404_not_found",
			statusCode: http.StatusNotFound,
			body:       "not found",
			wantErr:    true,
		},
		{
			name:       "500_server_error",
			statusCode: http.StatusInternalServerError,
			body:       "server error",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("User-Agent") != DefaultUserAgent {
					t.Errorf("unexpected User-Agent: %s", r.Header.Get("User-Agent"))
				}
				if r.Method != http.MethodGet {
					t.Errorf("unexpected method: %s", r.Method)
				}

				w.WriteHeader(tt.statusCode)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("failed to write response: %v", err)
				}
			}))
			defer server.Close()

			downloader := NewDownloader(Config{})

			data, err := downloader.Get(context.Background(), server.URL)

			if tt.wantErr {
				var fetchErr *FetchError
				if !errors.As(err, &fetchErr) {
					t.Fatalf("expected *FetchError, got %v", err)
				}
				if fetchErr.StatusCode != tt.statusCode {
					t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.statusCode)
				}
				if fetchErr.URL != server.URL {
					t.Errorf("URL = %q, want %q", fetchErr.URL, server.URL)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if string(data) != tt.body {
				t.Errorf("content mismatch:\ngot:  %q\nwant: %q", string(data), tt.body)
			}
		})
	}
}

func TestDownloaderNoRetryByDefault(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	downloader := NewDownloader(Config{})

	if _, err := downloader.Get(context.Background(), server.URL); err == nil {
		t.Fatal("expected error")
	}

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("expected 1 attempt, got %d", got)
	}
}

func TestDownloaderRetryLogic(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("success")); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	downloader := NewDownloader(Config{Retries: 1})

	data, err := downloader.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected success after retry, got error: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}

	if string(data) != "success" {
		t.Errorf("unexpected content: %s", string(data))
	}
}

func TestDownloaderContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Simulate slow response
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("too late")); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	downloader := NewDownloader(Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := downloader.Get(ctx, server.URL)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got: %v", err)
	}
}

func TestDownloaderTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	downloader := NewDownloader(Config{})

	_, err := downloader.Get(context.Background(), url)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport errors", fetchErr.StatusCode)
	}
	if !strings.Contains(err.Error(), url) {
		t.Errorf("error %q does not mention the URL", err)
	}
}

func TestDownloaderShortBody(t *testing.T) {
	tests := []struct {
		name          string
		contentLength string
	}{
		{"small", "1024"},
		{"huge", "1099511627776"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				t.Fatalf("listen: %v", err)
			}
			defer ln.Close()

			go func() {
				conn, err := ln.Accept()
				if err != nil {
					return
				}
				defer conn.Close()
				// Drain the request line and headers before answering.
				buf := make([]byte, 4096)
				_, _ = conn.Read(buf)
				_, _ = io.WriteString(conn, "HTTP/1.1 200 OK\r\nContent-Length: "+tt.contentLength+"\r\n\r\npartial")
			}()

			_, err = NewDownloader(Config{}).Get(context.Background(), "http://"+ln.Addr().String()+"/theme")

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected *FetchError, got %v", err)
			}
			if fetchErr.StatusCode != 0 {
				t.Errorf("StatusCode = %d, want 0 for a truncated body", fetchErr.StatusCode)
			}
		})
	}
}

func TestDownloaderTooManyRedirects(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+"/loop", http.StatusFound)
	}))
	defer server.Close()

	downloader := NewDownloader(Config{})

	_, err := downloader.Get(context.Background(), server.URL)
	if err == nil || !strings.Contains(err.Error(), "too many redirects") {
		t.Errorf("expected redirect error, got %v", err)
	}
}

func TestDownloaderCustomUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "custom/2.0" {
			t.Errorf("User-Agent = %q, want custom/2.0", got)
		}
	}))
	defer server.Close()

	downloader := NewDownloader(Config{UserAgent: "custom/2.0"})
	if _, err := downloader.Get(context.Background(), server.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

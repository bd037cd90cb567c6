package testutil

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const (
	// LatestPath serves the latest release manifest.
	LatestPath = "/releases/latest.json"
	// AllPath serves the list of releases.
	AllPath = "/releases/all.json"
	// AssetPrefix prefixes every asset path.
	AssetPrefix = "/assets/"
)

// Platform is one entry of a manifest's platforms list.
type Platform struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Digest    string `json:"digest"`
	Signature string `json:"signature,omitempty"`
}

// Release mirrors the manifest document served by the release bucket.
type Release struct {
	Version   string     `json:"version"`
	Platforms []Platform `json:"platforms"`
}

// ReleaseServer is an httptest server that behaves like the release bucket.
// Unknown paths answer 404. Every request is counted by path.
type ReleaseServer struct {
	*httptest.Server

	mu     sync.Mutex
	files  map[string][]byte
	status map[string]int
	hits   map[string]int
}

// NewReleaseServer starts a server that is closed when the test ends.
func NewReleaseServer(t *testing.T) *ReleaseServer {
	t.Helper()

	s := &ReleaseServer{
		files:  make(map[string][]byte),
		status: make(map[string]int),
		hits:   make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)

	return s
}

func (s *ReleaseServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	body, ok := s.files[r.URL.Path]
	code, forced := s.status[r.URL.Path]
	s.mu.Unlock()

	if forced {
		w.WriteHeader(code)
		return
	}

	if !ok {
		http.NotFound(w, r)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// SetFile serves body at path.
func (s *ReleaseServer) SetFile(path string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = body
}

// SetStatus makes path answer with code and an empty body.
func (s *ReleaseServer) SetStatus(path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[path] = code
}

// AddAsset serves data under the asset prefix and returns its URL.
func (s *ReleaseServer) AddAsset(name string, data []byte) string {
	path := AssetPrefix + strings.TrimPrefix(name, "/")
	s.SetFile(path, data)
	return s.URL + path
}

// SetLatest serves release as the latest manifest.
func (s *ReleaseServer) SetLatest(t *testing.T, release Release) {
	t.Helper()
	s.SetFile(LatestPath, mustJSON(t, release))
}

// SetAll serves releases as the release list.
func (s *ReleaseServer) SetAll(t *testing.T, releases []Release) {
	t.Helper()
	s.SetFile(AllPath, mustJSON(t, releases))
}

// LatestURL returns the URL of the latest manifest.
func (s *ReleaseServer) LatestURL() string {
	return s.URL + LatestPath
}

// AllURL returns the URL of the release list.
func (s *ReleaseServer) AllURL() string {
	return s.URL + AllPath
}

// Hits returns how many requests were made for path.
func (s *ReleaseServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// AssetHits returns how many requests were made for any asset.
func (s *ReleaseServer) AssetHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for path, n := range s.hits {
		if strings.HasPrefix(path, AssetPrefix) {
			total += n
		}
	}
	return total
}

// TotalHits returns the number of requests served.
func (s *ReleaseServer) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

// MD5Hex returns the lowercase hex MD5 digest of data.
func MD5Hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	return data
}

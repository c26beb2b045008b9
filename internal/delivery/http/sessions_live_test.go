package http

import (
	"fmt"
	"io"
	"net"
	nethttp "net/http"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast/backend/internal/service"
)

// liveServer serves the routes on a real listener so requests share
// kept-alive connections and fasthttp buffers, unlike app.Test.
type liveServer struct {
	baseURL  string
	registry *service.SessionRegistry
	client   *nethttp.Client
}

func newLiveServer(t *testing.T) *liveServer {
	t.Helper()

	app, registry := newTestAppWithRegistry(okStubs())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	return &liveServer{
		baseURL:  "http://" + ln.Addr().String(),
		registry: registry,
		client:   &nethttp.Client{},
	}
}

func (s *liveServer) do(t *testing.T, method, path, clientID, body string) map[string]any {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := nethttp.NewRequest(method, s.baseURL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ClientIDHeader, clientID)

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode, string(raw))

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func (s *liveServer) search(t *testing.T, clientID, city string) {
	t.Helper()
	s.do(t, nethttp.MethodPost, "/api/v1/session/search", clientID, fmt.Sprintf(`{"city":%q}`, city))
}

// post runs a session search without failing the test, for use off the test goroutine
func (s *liveServer) post(clientID, city string) error {
	req, err := nethttp.NewRequest(nethttp.MethodPost, s.baseURL+"/api/v1/session/search",
		strings.NewReader(fmt.Sprintf(`{"city":%q}`, city)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ClientIDHeader, clientID)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != nethttp.StatusOK {
		return fmt.Errorf("%s: status %d", clientID, resp.StatusCode)
	}
	return nil
}

func (s *liveServer) resultCity(t *testing.T, clientID string) any {
	t.Helper()
	data := s.do(t, nethttp.MethodGet, "/api/v1/session", clientID, "")["data"].(map[string]any)
	result, ok := data["result"].(map[string]any)
	if !ok {
		return nil
	}
	return result["city"]
}

func TestSessionsStayIsolatedOnKeptAliveConnection(t *testing.T) {
	srv := newLiveServer(t)

	srv.search(t, "aaaaaaa", "Paris")
	for i := 0; i < 5; i++ {
		srv.search(t, fmt.Sprintf("bbbbbb%d", i), "Rome")
	}
	// interleave: the first client searches again between the others' reads
	srv.search(t, "aaaaaaa", "Oslo")
	srv.search(t, "bbbbbb2", "Lima")

	assert.Equal(t, "Oslo", srv.resultCity(t, "aaaaaaa"))
	for i := 0; i < 5; i++ {
		want := "Rome"
		if i == 2 {
			want = "Lima"
		}
		assert.Equal(t, want, srv.resultCity(t, fmt.Sprintf("bbbbbb%d", i)), "client bbbbbb%d", i)
	}

	assert.Equal(t, 6, srv.registry.Len())
	health := srv.do(t, nethttp.MethodGet, "/health", "", "")
	assert.Equal(t, 6.0, health["sessions"])
}

func TestSessionsStayIsolatedUnderConcurrentClients(t *testing.T) {
	srv := newLiveServer(t)

	const clients = 8
	var wg sync.WaitGroup
	errs := make(chan error, clients*5)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("client-%02d", i)
			for round := 0; round < 5; round++ {
				if err := srv.post(id, fmt.Sprintf("city-%02d-%d", i, round)); err != nil {
					errs <- err
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	for i := 0; i < clients; i++ {
		assert.Equal(t, fmt.Sprintf("city-%02d-4", i), srv.resultCity(t, fmt.Sprintf("client-%02d", i)))
	}
	assert.Equal(t, clients, srv.registry.Len())
}

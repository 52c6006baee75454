package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"iremember/pkg/memgraph"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSource serves a canned graph or a canned error.
type fakeSource struct {
	graph   *memgraph.Graph
	fetchEr error
	pingErr error
}

func (f *fakeSource) FetchOverview(ctx context.Context) (*memgraph.Graph, error) {
	if f.fetchEr != nil {
		return nil, f.fetchEr
	}
	return f.graph, nil
}

func (f *fakeSource) Ping(ctx context.Context) error { return f.pingErr }

func newTestServer(t *testing.T, source GraphSource) *Server {
	t.Helper()
	return New(Config{Host: "127.0.0.1", Port: 0}, source, nil)
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestGraphEndpoint(t *testing.T) {
	g := memgraph.New()
	g.AddEdge("alice", "coffee", "LIKES")
	s := newTestServer(t, &fakeSource{graph: g})

	w := doRequest(t, s, http.MethodGet, "/api/graph")
	require.Equal(t, http.StatusOK, w.Code)

	var doc memgraph.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Len(t, doc.Nodes, 2)
	assert.Len(t, doc.Edges, 1)
	assert.Len(t, doc.Layout, 2)
	assert.Empty(t, doc.Message)
}

func TestGraphEndpointEmptyGraph(t *testing.T) {
	s := newTestServer(t, &fakeSource{graph: memgraph.New()})

	w := doRequest(t, s, http.MethodGet, "/api/graph")
	require.Equal(t, http.StatusOK, w.Code)

	var doc memgraph.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, memgraph.EmptyGraphMessage, doc.Message)
	assert.Empty(t, doc.Layout)
}

func TestGraphEndpointFetchFailure(t *testing.T) {
	s := newTestServer(t, &fakeSource{fetchEr: errors.New("connection refused")})

	w := doRequest(t, s, http.MethodGet, "/api/graph")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestStatsEndpoint(t *testing.T) {
	g := memgraph.New()
	g.AddEdge("alice", "bob", "KNOWS")
	g.AddNode("standalone")
	s := newTestServer(t, &fakeSource{graph: g})

	w := doRequest(t, s, http.MethodGet, "/api/graph/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats memgraph.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.NodeCount)
	assert.Equal(t, 1, stats.EdgeCount)
	assert.Equal(t, 1, stats.IsolatedNodes)
}

func TestNeighborsEndpoint(t *testing.T) {
	g := memgraph.New()
	g.AddEdge("alice", "bob", "KNOWS")
	s := newTestServer(t, &fakeSource{graph: g})

	w := doRequest(t, s, http.MethodGet, "/api/graph/nodes/alice")
	require.Equal(t, http.StatusOK, w.Code)

	var nb memgraph.Neighborhood
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nb))
	assert.Equal(t, "alice", nb.Node)
	assert.Len(t, nb.Outgoing, 1)

	w = doRequest(t, s, http.MethodGet, "/api/graph/nodes/nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeSource{graph: memgraph.New()})
	w := doRequest(t, s, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)

	s = newTestServer(t, &fakeSource{graph: memgraph.New(), pingErr: errors.New("down")})
	w = doRequest(t, s, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIndexServesViewerPage(t *testing.T) {
	s := newTestServer(t, &fakeSource{graph: memgraph.New()})

	w := doRequest(t, s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Memory Graph"), "viewer page should mention the memory graph")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

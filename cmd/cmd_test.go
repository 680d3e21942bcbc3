package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/dnburn/dnb"
)

const testURN = "urn:nbn:de:test-1"

// fakeResolver answers "METHOD path" routes and records what it saw
type fakeResolver struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	seen   []string
}

func newFakeResolver(t *testing.T) (*fakeResolver, *httptest.Server) {
	fr := &fakeResolver{routes: make(map[string]http.HandlerFunc)}
	server := httptest.NewServer(fr)
	t.Cleanup(server.Close)
	return fr, server
}

func (fr *fakeResolver) handle(route string, h http.HandlerFunc) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.routes[route] = h
}

func (fr *fakeResolver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.EscapedPath()

	fr.mu.Lock()
	fr.seen = append(fr.seen, route)
	h, ok := fr.routes[route]
	fr.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w, r)
}

func (fr *fakeResolver) requests() []string {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return append([]string(nil), fr.seen...)
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// resetFlags restores every flag to its default between runs
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, server *httptest.Server, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\ndnb:\n  tracing: false\n"), 0o600))

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{
		"--config", cfgPath,
		"--api-url", server.URL + "/v2",
		"--username", "user",
		"--password", "secret",
	}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestURNShow(t *testing.T) {
	fr, server := newFakeResolver(t)
	fr.handle("GET /v2/urns/urn/"+testURN, reply(http.StatusOK, `{
		"self": "https://api.nbn-resolving.org/v2/urns/urn/urn:nbn:de:test-1",
		"urn": "urn:nbn:de:test-1",
		"namespace": "urn:nbn:de",
		"successor": "urn:nbn:de:test-2"
	}`))

	out, err := execute(t, server, "", "urn", "show", testURN)
	require.NoError(t, err)
	assert.Contains(t, out, testURN)
	assert.Contains(t, out, "Successor: urn:nbn:de:test-2")
}

func TestURNShowNotFound(t *testing.T) {
	_, server := newFakeResolver(t)

	_, err := execute(t, server, "", "urn", "show", testURN)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, dnb.StatusCode(err))
	assert.Equal(t, "!! ERROR dnb client - status of last response: 404", dnb.ErrorMessage(err))
}

func TestURLListFilter(t *testing.T) {
	fr, server := newFakeResolver(t)
	fr.handle("GET /v2/urns/urn/"+testURN+"/urls", reply(http.StatusOK, `{
		"totalItems": 2,
		"items": [
			{"url": "https://example.org/a", "priority": 1},
			{"url": "https://mirror.example.com/b", "priority": 5}
		]
	}`))

	out, err := execute(t, server, "", "url", "list", testURN, "--filter", `Priority < 3`)
	require.NoError(t, err)
	assert.Contains(t, out, "https://example.org/a")
	assert.NotContains(t, out, "https://mirror.example.com/b")

	_, err = execute(t, server, "", "url", "list", testURN, "--filter", `Priority +`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter expression")
}

func TestURLListOwnJSON(t *testing.T) {
	fr, server := newFakeResolver(t)
	fr.handle("GET /v2/urns/urn/"+testURN+"/my-urls", reply(http.StatusOK, `{
		"items": [{"url": "https://example.org/a", "priority": 1, "owner": "user"}]
	}`))

	out, err := execute(t, server, "", "url", "list", testURN, "--own", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"url": "https://example.org/a",
		"created": null,
		"lastModified": null,
		"urn": null,
		"owner": "user",
		"priority": 1,
		"self": null
	}]`, out)
}

func TestURLDelete(t *testing.T) {
	address := "https://example.org/a"
	route := "DELETE /v2/urns/urn/" + testURN + "/urls/base64/aHR0cHM6Ly9leGFtcGxlLm9yZy9h"

	t.Run("no confirm", func(t *testing.T) {
		fr, server := newFakeResolver(t)
		fr.handle(route, reply(http.StatusNoContent, ""))

		out, err := execute(t, server, "", "url", "delete", testURN, address, "--no-confirm")
		require.NoError(t, err)
		assert.Contains(t, out, "URL deleted")
		assert.Equal(t, []string{route}, fr.requests())
	})

	t.Run("declined", func(t *testing.T) {
		fr, server := newFakeResolver(t)
		fr.handle(route, reply(http.StatusNoContent, ""))

		out, err := execute(t, server, "n\n", "url", "delete", testURN, address)
		require.ErrorIs(t, err, errNotConfirmed)
		assert.Contains(t, out, "[y/N]")
		assert.Empty(t, fr.requests())
	})

	t.Run("confirmed", func(t *testing.T) {
		fr, server := newFakeResolver(t)
		fr.handle(route, reply(http.StatusNoContent, ""))

		_, err := execute(t, server, "y\n", "url", "delete", testURN, address)
		require.NoError(t, err)
		assert.Equal(t, []string{route}, fr.requests())
	})

	t.Run("unexpected status", func(t *testing.T) {
		fr, server := newFakeResolver(t)
		fr.handle(route, reply(http.StatusOK, ""))

		_, err := execute(t, server, "", "url", "delete", testURN, address, "--no-confirm")
		require.Error(t, err)
		assert.Equal(t, http.StatusOK, dnb.StatusCode(err))
	})
}

func TestURNExistsBatch(t *testing.T) {
	fr, server := newFakeResolver(t)
	fr.handle("HEAD /v2/urns/urn/urn:nbn:de:a", reply(http.StatusOK, ""))
	fr.handle("HEAD /v2/urns/urn/urn:nbn:de:c", reply(http.StatusInternalServerError, ""))

	out, err := execute(t, server, "", "urn", "exists", "urn:nbn:de:a", "urn:nbn:de:b", "urn:nbn:de:c", "--output", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 checks failed")
	assert.JSONEq(t, `[
		{"name": "urn:nbn:de:a", "exists": true},
		{"name": "urn:nbn:de:b", "exists": false},
		{"name": "urn:nbn:de:c", "exists": false, "error": "!! ERROR dnb client - status of last response: 500"}
	]`, out)
}

func TestURLAddWithPriority(t *testing.T) {
	fr, server := newFakeResolver(t)

	var body string
	fr.handle("POST /v2/urns/urn/"+testURN+"/urls", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		reply(http.StatusCreated, `{"url": "https://example.org/a", "priority": 2}`)(w, r)
	})

	out, err := execute(t, server, "", "url", "add", testURN, "https://example.org/a", "--priority", "2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"url": "https://example.org/a", "priority": 2}`, body)
	assert.Contains(t, out, "Priority: 2")
}

func TestURNRegisterJSON(t *testing.T) {
	fr, server := newFakeResolver(t)

	var body string
	fr.handle("POST /v2/urns", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		reply(http.StatusCreated, `{"urn": "urn:nbn:de:test-1", "self": "x"}`)(w, r)
	})

	_, err := execute(t, server, "", "urn", "register", testURN, "--json",
		`{"url": "https://example.org/a", "priority": 1}`,
		`["https://example.org/b"]`,
	)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"urn": "urn:nbn:de:test-1",
		"urls": [
			{"url": "https://example.org/a", "priority": 1},
			{"url": "https://example.org/b", "priority": null}
		]
	}`, body)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, server := newFakeResolver(t)

	_, err := execute(t, server, "", "version", "--output", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestVersion(t *testing.T) {
	_, server := newFakeResolver(t)

	out, err := execute(t, server, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dnburn "+appVersion))
}

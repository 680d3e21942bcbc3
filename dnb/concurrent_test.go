package dnb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/dnburn/urlrecord"
)

func TestURNExistsMany(t *testing.T) {
	fs, server := newFakeService(t)
	fs.handle(http.MethodHead, "/v2/urns/urn/urn:a", statusResponse(http.StatusOK))
	fs.handle(http.MethodHead, "/v2/urns/urn/urn:c", statusResponse(http.StatusServiceUnavailable))

	client := newTestClient(t, server)
	results := client.URNExistsMany(context.Background(), []string{"urn:a", "urn:b", "urn:c"})
	require.Len(t, results, 3)

	assert.Equal(t, "urn:a", results[0].URN)
	assert.True(t, results[0].Exists)
	assert.NoError(t, results[0].Err)

	assert.Equal(t, "urn:b", results[1].URN)
	assert.False(t, results[1].Exists)
	assert.NoError(t, results[1].Err)

	assert.Equal(t, "urn:c", results[2].URN)
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(results[2].Err))

	assert.Empty(t, client.URNExistsMany(context.Background(), nil))
}

func TestURLExistsMany(t *testing.T) {
	fs, server := newFakeService(t)
	fs.handle(http.MethodGet, "/v2/urns/urn/"+testURN+"/urls/base64/"+b64("https://a"),
		jsonResponse(http.StatusOK, `{"url": "https://a"}`))

	client := newTestClient(t, server)
	results, err := client.URLExistsMany(context.Background(), testURN, urlrecord.Addresses("https://a", "https://b"))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, URLExistsResult{URL: "https://a", Exists: true}, results[0])
	assert.Equal(t, URLExistsResult{URL: "https://b", Exists: false}, results[1])

	_, err = client.URLExistsMany(context.Background(), testURN, urlrecord.Collection{urlrecord.Keyed{}})
	assert.ErrorIs(t, err, urlrecord.ErrUnnormalizable)
}

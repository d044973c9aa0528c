package demo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := NewServer(ServerConfig{
		Application:    "demo-under-test",
		Profile:        "test",
		ImageType:      "JVM",
		ConnectionPool: "HikariCP",
	}, time.Now().Add(-150*time.Millisecond))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, into any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if into != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
	}
	return resp
}

func TestStartupCheck(t *testing.T) {
	ts := testServer(t)

	var body map[string]string
	resp := getJSON(t, ts.URL+"/startup-check", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "UP", body["status"])
}

func TestMetricsPayloadShape(t *testing.T) {
	ts := testServer(t)

	var payload map[string]any
	resp := getJSON(t, ts.URL+"/metrics", &payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "demo-under-test", payload["application"])
	assert.Equal(t, "test", payload["profile"])
	assert.Equal(t, "JVM", payload["imageType"])
	assert.Equal(t, "HikariCP", payload["connectionPool"])

	// formatted-string numerics, exactly like the deployed services
	startup, ok := payload["startupTimeSeconds"].(string)
	require.True(t, ok)
	v, err := strconv.ParseFloat(startup, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 0.15)

	memory, ok := payload["memory"].(map[string]any)
	require.True(t, ok)
	used, ok := memory["usedMB"].(string)
	require.True(t, ok)
	_, err = strconv.ParseFloat(used, 64)
	assert.NoError(t, err)
}

func TestMetricsSubViews(t *testing.T) {
	ts := testServer(t)

	var startup map[string]any
	getJSON(t, ts.URL+"/metrics/startup", &startup)
	assert.Equal(t, "JVM", startup["imageType"])
	assert.Contains(t, startup, "startupTimeSeconds")

	var memory map[string]any
	getJSON(t, ts.URL+"/metrics/memory", &memory)
	assert.Contains(t, memory, "usedMB")
	assert.Contains(t, memory, "usagePercent")
}

func TestMessageCRUD(t *testing.T) {
	ts := testServer(t)

	// create
	resp, err := http.Post(ts.URL+"/messages", "application/json",
		bytes.NewBufferString(`{"content":"hello"}`))
	require.NoError(t, err)
	var created Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "hello", created.Content)
	require.NotZero(t, created.ID)

	// list
	var list []Message
	getJSON(t, ts.URL+"/messages", &list)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])

	// get
	var got Message
	getJSON(t, fmt.Sprintf("%s/messages/%d", ts.URL, created.ID), &got)
	assert.Equal(t, created, got)

	// update
	req, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/messages/%d", ts.URL, created.ID),
		bytes.NewBufferString(`{"content":"updated"}`))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	var updated Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()
	assert.Equal(t, "updated", updated.Content)

	// delete
	req, err = http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/messages/%d", ts.URL, created.ID), nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// gone
	resp = getJSON(t, fmt.Sprintf("%s/messages/%d", ts.URL, created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMessageValidation(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/messages", "application/json",
		bytes.NewBufferString(`{not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = getJSON(t, ts.URL+"/messages/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDBInfo(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/messages", "application/json",
		bytes.NewBufferString(`{"content":"one"}`))
	require.NoError(t, err)
	resp.Body.Close()

	var info map[string]any
	getJSON(t, ts.URL+"/db-info", &info)
	assert.Equal(t, true, info["connected"])
	counts, ok := info["recordCounts"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, counts["Message"])
}

package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func (s *BaseSuite) doRequest(method, path string, body any, headers map[string]string) *http.Response {
	s.T().Helper()

	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.T(), err)

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reqBody)
	require.NoError(s.T(), err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("X-User-Id", testUserID)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	require.NoError(s.T(), err)

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

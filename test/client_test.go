//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/2beens/fitxp/internal/auth"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

const testPassword = "mellon-friend"

// do sends a JSON request to the running service and returns the status and body.
func (s *IntegrationTestSuite) do(ctx context.Context, method, path, token string, body any) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) decode(t *testing.T, data []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v), string(data))
}

// newUser registers a fresh random user and logs in.
func (s *IntegrationTestSuite) newUser(ctx context.Context) (string, *auth.LoginResponse) {
	t := s.T()
	username := gofakeit.Username() + gofakeit.DigitN(4)

	status, body := s.do(ctx, "POST", "/a/register", "", auth.Registration{
		Username:        username,
		Password:        testPassword,
		PasswordConfirm: testPassword,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = s.do(ctx, "POST", "/a/login", "", auth.Credentials{
		Username: username,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var loginResp auth.LoginResponse
	s.decode(t, body, &loginResp)
	require.NotEmpty(t, loginResp.Token)
	return username, &loginResp
}

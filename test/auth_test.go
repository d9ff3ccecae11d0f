//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/2beens/fitxp/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRegisterAndLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	username, loginResp := s.newUser(ctx)
	assert.Equal(t, username, loginResp.Username)

	// same username again
	status, _ := s.do(ctx, "POST", "/a/register", "", auth.Registration{
		Username:        username,
		Password:        testPassword,
		PasswordConfirm: testPassword,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(ctx, "POST", "/a/register", "", auth.Registration{
		Username:        "short-pass",
		Password:        "abc",
		PasswordConfirm: "abc",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(ctx, "POST", "/a/login", "", auth.Credentials{
		Username: username,
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestLogoutAndRefresh() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, loginResp := s.newUser(ctx)

	status, body := s.do(ctx, "POST", "/a/refresh", loginResp.Token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var refreshed auth.LoginResponse
	s.decode(t, body, &refreshed)
	assert.NotEqual(t, loginResp.Token, refreshed.Token)
	assert.Equal(t, loginResp.UserID, refreshed.UserID)

	// the old session is gone after a refresh
	status, _ = s.do(ctx, "GET", "/profile", loginResp.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(ctx, "GET", "/profile", refreshed.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = s.do(ctx, "POST", "/a/logout", refreshed.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"loggedOut":true}`, string(body))

	status, _ = s.do(ctx, "GET", "/profile", refreshed.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

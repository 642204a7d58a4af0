package api_test

import (
	"testing"
)

func TestLoginRejectsBadCredentials(t *testing.T) {
	resp := makeRequest("POST", "/auth/login", map[string]string{
		"username": "admin",
		"password": "definitely-wrong",
	}, "")

	if resp.IsSuccess() {
		t.Fatal("Login with a wrong password must fail")
	}
}

func TestRefreshTokenFlow(t *testing.T) {
	loginResp := makeRequest("POST", "/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	}, "")
	if !loginResp.IsSuccess() {
		t.Skipf("Login failed: %s", loginResp.Message)
	}

	refreshToken := loginResp.GetString("refresh_token")
	if refreshToken == "" {
		t.Fatal("Login response missing refresh token")
	}

	refreshResp := makeRequest("POST", "/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, "")
	if !refreshResp.IsSuccess() {
		t.Fatalf("Refresh failed: %s", refreshResp.Message)
	}
	if refreshResp.GetString("access_token") == "" {
		t.Fatal("Refresh response missing access token")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	resp := makeRequest("GET", "/profiles/me", nil, "")
	if resp.IsSuccess() {
		t.Fatal("Unauthenticated request must be rejected")
	}

	resp = makeRequest("GET", "/profiles/me", nil, "not-a-token")
	if resp.IsSuccess() {
		t.Fatal("Request with a garbage token must be rejected")
	}
}

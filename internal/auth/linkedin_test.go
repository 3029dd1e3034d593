package auth

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	sharedauth "careerlaunch-backend/internal/shared/auth"
	"careerlaunch-backend/internal/users"
)

type providerStub struct {
	tokenStatus   int
	profileStatus int
	emailStatus   int

	tokenHits   atomic.Int32
	profileHits atomic.Int32
	emailHits   atomic.Int32
}

func (p *providerStub) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/accessToken", func(w http.ResponseWriter, r *http.Request) {
		p.tokenHits.Add(1)
		if p.tokenStatus != http.StatusOK {
			w.WriteHeader(p.tokenStatus)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"li-token","expires_in":3600}`))
	})
	mux.HandleFunc("/v2/me", func(w http.ResponseWriter, r *http.Request) {
		p.profileHits.Add(1)
		if r.Header.Get("Authorization") != "Bearer li-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if p.profileStatus != http.StatusOK {
			w.WriteHeader(p.profileStatus)
			return
		}
		_, _ = w.Write([]byte(`{"id":"abc123","localizedFirstName":"Jane","localizedLastName":"Doe"}`))
	})
	mux.HandleFunc("/v2/emailAddress", func(w http.ResponseWriter, r *http.Request) {
		p.emailHits.Add(1)
		if p.emailStatus != http.StatusOK {
			w.WriteHeader(p.emailStatus)
			return
		}
		_, _ = w.Write([]byte(`{"elements":[{"handle~":{"emailAddress":"jane@example.com"},"handle":"urn:li:emailAddress:1"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, srv *httptest.Server, accounts *users.MemoryRepo) (*LinkedInService, *sharedauth.Tokens) {
	t.Helper()
	tokens, err := sharedauth.NewTokens("test-secret", "dev")
	require.NoError(t, err)

	svc := NewLinkedInService("client-id", "client-secret", "http://localhost/callback", users.NewService(accounts, bcrypt.MinCost), tokens)
	svc.oauthConfig.Endpoint.TokenURL = srv.URL + "/oauth/v2/accessToken"
	svc.profileURL = srv.URL + "/v2/me"
	svc.emailURL = srv.URL + "/v2/emailAddress?q=members&projection=(elements*(handle~))"
	svc.httpClient = srv.Client()
	return svc, tokens
}

func callback(svc *LinkedInService, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc.RegisterRoutes(router.Group("/api"))

	req := httptest.NewRequest(http.MethodPost, "/api/linkedin/callback", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestLinkedInCallbackCreatesAccount(t *testing.T) {
	stub := &providerStub{tokenStatus: http.StatusOK, profileStatus: http.StatusOK, emailStatus: http.StatusOK}
	accounts := users.NewMemoryRepo()
	svc, tokens := newTestService(t, stub.server(t), accounts)

	resp := callback(svc, `{"code":"auth-code"}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Email       string `json:"email"`
			Password    string `json:"password"`
			LinkedInURL string `json:"linkedinUrl"`
			Token       string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "LinkedIn authentication successful", body.Message)
	assert.Equal(t, "jane@example.com", body.Data.Email)
	assert.Equal(t, "https://www.linkedin.com/in/abc123", body.Data.LinkedInURL)

	raw, err := base64.RawURLEncoding.DecodeString(body.Data.Password)
	require.NoError(t, err)
	assert.Len(t, raw, 16)

	claims, err := tokens.Verify(body.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, "linkedin:abc123", claims.Subject)

	account, ok := accounts.Lookup("jane@example.com")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", account.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(body.Data.Password)))
}

func TestLinkedInCallbackStopsAtFailingStep(t *testing.T) {
	tests := []struct {
		name        string
		stub        *providerStub
		wantProfile int32
		wantEmail   int32
		wantDetail  string
	}{
		{
			name:       "token exchange rejected",
			stub:       &providerStub{tokenStatus: http.StatusUnauthorized, profileStatus: http.StatusOK, emailStatus: http.StatusOK},
			wantDetail: "Failed to get LinkedIn access token (status 401)",
		},
		{
			name:        "profile rejected",
			stub:        &providerStub{tokenStatus: http.StatusOK, profileStatus: http.StatusForbidden, emailStatus: http.StatusOK},
			wantProfile: 1,
			wantDetail:  "Failed to get LinkedIn profile (status 403)",
		},
		{
			name:        "email rejected",
			stub:        &providerStub{tokenStatus: http.StatusOK, profileStatus: http.StatusOK, emailStatus: http.StatusInternalServerError},
			wantProfile: 1,
			wantEmail:   1,
			wantDetail:  "Failed to get LinkedIn email (status 500)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			accounts := users.NewMemoryRepo()
			svc, _ := newTestService(t, tt.stub.server(t), accounts)

			resp := callback(svc, `{"code":"auth-code"}`)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantDetail)
			assert.Equal(t, int32(1), tt.stub.tokenHits.Load())
			assert.Equal(t, tt.wantProfile, tt.stub.profileHits.Load())
			assert.Equal(t, tt.wantEmail, tt.stub.emailHits.Load())

			_, ok := accounts.Lookup("jane@example.com")
			assert.False(t, ok)
		})
	}
}

func TestLinkedInCallbackRequiresCode(t *testing.T) {
	stub := &providerStub{tokenStatus: http.StatusOK, profileStatus: http.StatusOK, emailStatus: http.StatusOK}
	svc, _ := newTestService(t, stub.server(t), users.NewMemoryRepo())

	resp := callback(svc, `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, int32(0), stub.tokenHits.Load())
}

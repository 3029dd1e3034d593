package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"

	sharedauth "careerlaunch-backend/internal/shared/auth"
	"careerlaunch-backend/internal/shared/server/respond"
	"careerlaunch-backend/internal/shared/telemetry"
	"careerlaunch-backend/internal/users"
)

const (
	defaultProfileURL = "https://api.linkedin.com/v2/me"
	defaultEmailURL   = "https://api.linkedin.com/v2/emailAddress?q=members&projection=(elements*(handle~))"
	profileURLPrefix  = "https://www.linkedin.com/in/"
	passwordBytes     = 16
)

// AccountRegistrar creates or refreshes an account with a new credential.
type AccountRegistrar interface {
	Register(ctx context.Context, account users.Account, password string) (users.Account, error)
}

// TokenSigner issues session tokens.
type TokenSigner interface {
	Sign(claims sharedauth.Claims) (string, error)
}

// LinkedInService exchanges LinkedIn authorization codes for local accounts.
type LinkedInService struct {
	oauthConfig *oauth2.Config
	profileURL  string
	emailURL    string
	httpClient  *http.Client
	accounts    AccountRegistrar
	tokens      TokenSigner
}

// NewLinkedInService builds a LinkedInService.
func NewLinkedInService(clientID, clientSecret, redirectURL string, accounts AccountRegistrar, tokens TokenSigner) *LinkedInService {
	return &LinkedInService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"r_liteprofile", "r_emailaddress"},
			Endpoint:     linkedin.Endpoint,
		},
		profileURL: defaultProfileURL,
		emailURL:   defaultEmailURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		accounts:   accounts,
		tokens:     tokens,
	}
}

// RegisterRoutes attaches LinkedIn auth routes.
func (s *LinkedInService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/linkedin/callback", s.callback)
}

type callbackRequest struct {
	Code string `json:"code" binding:"required"`
}

type callbackResponse struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	LinkedInURL string `json:"linkedinUrl"`
	Token       string `json:"token"`
}

// stepError reports a provider call that answered with a non-2xx status.
type stepError struct {
	step   string
	status int
}

func (e *stepError) Error() string {
	return fmt.Sprintf("Failed to get LinkedIn %s (status %d)", e.step, e.status)
}

type linkedInProfile struct {
	ID                 string `json:"id"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
}

type linkedInEmail struct {
	Elements []struct {
		Handle struct {
			EmailAddress string `json:"emailAddress"`
		} `json:"handle~"`
	} `json:"elements"`
}

func (s *LinkedInService) callback(c *gin.Context) {
	var req callbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "code is required")
		return
	}
	if s.oauthConfig.ClientID == "" || s.oauthConfig.ClientSecret == "" {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "LinkedIn auth not configured")
		return
	}

	ctx := context.WithValue(c.Request.Context(), oauth2.HTTPClient, s.httpClient)
	token, err := s.oauthConfig.Exchange(ctx, req.Code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			writeStepError(c, &stepError{step: "access token", status: retrieveErr.Response.StatusCode})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "auth_failed", err.Error())
		return
	}

	client := s.oauthConfig.Client(ctx, token)

	var profile linkedInProfile
	if err := fetchJSON(ctx, client, s.profileURL, "profile", &profile); err != nil {
		writeStepError(c, err)
		return
	}

	var emailData linkedInEmail
	if err := fetchJSON(ctx, client, s.emailURL, "email", &emailData); err != nil {
		writeStepError(c, err)
		return
	}
	if len(emailData.Elements) == 0 || strings.TrimSpace(emailData.Elements[0].Handle.EmailAddress) == "" {
		respond.Error(c, http.StatusInternalServerError, "auth_failed", "LinkedIn email response has no address")
		return
	}
	email := strings.TrimSpace(emailData.Elements[0].Handle.EmailAddress)

	password, err := generatePassword()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	linkedInURL := profileURLPrefix + profile.ID
	fullName := profile.LocalizedFirstName + " " + profile.LocalizedLastName
	account, err := s.accounts.Register(ctx, users.Account{
		Email:       email,
		FullName:    fullName,
		LinkedInID:  profile.ID,
		LinkedInURL: linkedInURL,
	}, password)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "account_error", err.Error())
		return
	}

	session, err := s.tokens.Sign(sharedauth.Claims{
		Email: account.Email,
		Name:  strings.TrimSpace(fullName),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "linkedin:" + profile.ID,
		},
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	telemetry.Info("auth.linkedin_login", map[string]any{
		"account_id": account.ID,
	})
	respond.Success(c, "LinkedIn authentication successful", callbackResponse{
		Email:       email,
		Password:    password,
		LinkedInURL: linkedInURL,
		Token:       session,
	})
}

func fetchJSON(ctx context.Context, client *http.Client, url, step string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &stepError{step: step, status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode LinkedIn %s: %w", step, err)
	}
	return nil
}

func writeStepError(c *gin.Context, err error) {
	var stepErr *stepError
	if errors.As(err, &stepErr) {
		respond.Error(c, http.StatusBadRequest, "linkedin_error", stepErr.Error())
		return
	}
	respond.Error(c, http.StatusInternalServerError, "auth_failed", err.Error())
}

func generatePassword() (string, error) {
	buf := make([]byte, passwordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

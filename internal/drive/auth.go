package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/gofoil/internal/common"
)

const (
	defaultTokenURL = "https://oauth2.googleapis.com/token"
	driveScope      = "https://www.googleapis.com/auth/drive"

	jwtBearerGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// tokenLeeway is subtracted from the reported lifetime so a token is
	// refreshed before it actually expires mid-request.
	tokenLeeway = time.Minute
)

// serviceAccount mirrors the fields of a Google service-account JSON file
// that the assertion flow needs.
type serviceAccount struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// userToken mirrors an authorized-user token file (token.json): the refresh
// token plus the OAuth client it was issued to.
type userToken struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

// oauthClient mirrors the "installed" application section of a downloaded
// OAuth client credentials file.
type oauthClient struct {
	Installed struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"installed"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// tokenSource produces Drive access tokens. Either the service-account
// assertion flow or the authorized-user refresh flow, depending on the
// credentials file contents.
type tokenSource struct {
	tokenURL string

	// service-account flow
	account *serviceAccount

	// authorized-user flow
	user *userToken
}

// newTokenSource inspects the credentials file and builds the matching flow.
// For non-service-account credentials the refresh token is read from
// tokenPath and the client id/secret from the credentials file when the
// token file does not carry its own.
func newTokenSource(credentialsPath, tokenPath, tokenURL string) (*tokenSource, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCredentialsMissing, err)
	}

	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	var account serviceAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", credentialsPath, err)
	}
	if account.Type == "service_account" {
		if account.TokenURI != "" {
			tokenURL = account.TokenURI
		}
		return &tokenSource{tokenURL: tokenURL, account: &account}, nil
	}

	tokenData, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCredentialsMissing, err)
	}
	var user userToken
	if err := json.Unmarshal(tokenData, &user); err != nil {
		return nil, fmt.Errorf("parse token %s: %w", tokenPath, err)
	}
	if user.ClientID == "" || user.ClientSecret == "" {
		var client oauthClient
		if err := json.Unmarshal(data, &client); err == nil {
			if user.ClientID == "" {
				user.ClientID = client.Installed.ClientID
			}
			if user.ClientSecret == "" {
				user.ClientSecret = client.Installed.ClientSecret
			}
		}
	}
	if user.RefreshToken == "" {
		return nil, fmt.Errorf("%w: %s has no refresh_token", common.ErrCredentialsMissing, tokenPath)
	}
	return &tokenSource{tokenURL: tokenURL, user: &user}, nil
}

// fetch obtains a fresh access token and its expiry.
func (ts *tokenSource) fetch(ctx context.Context, httpClient *http.Client) (string, time.Time, error) {
	var form url.Values
	if ts.account != nil {
		assertion, err := ts.assertion()
		if err != nil {
			return "", time.Time{}, err
		}
		form = url.Values{
			"grant_type": {jwtBearerGrant},
			"assertion":  {assertion},
		}
	} else {
		form = url.Values{
			"grant_type":    {"refresh_token"},
			"client_id":     {ts.user.ClientID},
			"client_secret": {ts.user.ClientSecret},
			"refresh_token": {ts.user.RefreshToken},
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("token endpoint: %s", resp.Status)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", time.Time{}, fmt.Errorf("token endpoint: %w", err)
	}
	if tok.AccessToken == "" {
		return "", time.Time{}, fmt.Errorf("token endpoint: empty access token")
	}

	expiry := time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenLeeway)
	return tok.AccessToken, expiry, nil
}

// assertion builds the signed service-account JWT for the bearer grant.
func (ts *tokenSource) assertion() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(ts.account.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("service account private key: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   ts.account.ClientEmail,
		"scope": driveScope,
		"aud":   ts.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}
	return signed, nil
}

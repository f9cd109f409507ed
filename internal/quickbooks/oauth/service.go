package oauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smallbiznis/booksync/internal/config"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	settingsdomain "github.com/smallbiznis/booksync/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	authorizeEndpoint = "https://appcenter.intuit.com/connect/oauth2"
	tokenEndpoint     = "https://oauth.platform.intuit.com/oauth2/v1/tokens/bearer"
	accountingScope   = "com.intuit.quickbooks.accounting"
)

var (
	ErrMissingClientID     = errors.New("quickbooks client id is not configured")
	ErrMissingClientSecret = errors.New("quickbooks client secret is not configured")
	ErrMissingRedirectURI  = errors.New("quickbooks redirect uri is not configured")
	ErrMissingCode         = errors.New("missing authorization code")
	ErrMissingRealmID      = errors.New("missing realm id")
	ErrEmptyTokenResponse  = errors.New("empty token response")
)

type ConnectResult struct {
	RealmID     string `json:"realm_id"`
	CompanyName string `json:"company_name"`
}

type Service interface {
	// AuthorizationURL builds the provider authorize URL with the accounting
	// scope. The redirect URI must be registered with the provider out of band.
	AuthorizationURL(state string) (string, error)
	// Connect exchanges the authorization code, persists tokens and realm id,
	// then fetches and persists the company display name as a verification
	// step.
	Connect(ctx context.Context, code, realmID string) (ConnectResult, error)
}

type Params struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	Settings settingsdomain.Service
	QB       *quickbooks.Client
}

type service struct {
	cfg      config.QuickBooksConfig
	log      *zap.Logger
	settings settingsdomain.Service
	qb       *quickbooks.Client
	http     *http.Client
}

func New(p Params) Service {
	return &service{
		cfg:      p.Cfg.QuickBooks,
		log:      p.Log.Named("quickbooks.oauth"),
		settings: p.Settings,
		qb:       p.QB,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *service) AuthorizationURL(state string) (string, error) {
	if err := s.checkConfig(); err != nil {
		return "", err
	}

	values := url.Values{}
	values.Set("client_id", s.cfg.ClientID)
	values.Set("response_type", "code")
	values.Set("scope", accountingScope)
	values.Set("redirect_uri", s.cfg.RedirectURI)
	values.Set("state", state)

	return authorizeEndpoint + "?" + values.Encode(), nil
}

func (s *service) Connect(ctx context.Context, code, realmID string) (ConnectResult, error) {
	if err := s.checkConfig(); err != nil {
		return ConnectResult{}, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return ConnectResult{}, ErrMissingCode
	}
	realmID = strings.TrimSpace(realmID)
	if realmID == "" {
		return ConnectResult{}, ErrMissingRealmID
	}

	token, err := s.exchangeCode(ctx, code)
	if err != nil {
		return ConnectResult{}, err
	}

	settings := settingsdomain.ConnectionSettings{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		RealmID:      realmID,
		Environment:  s.cfg.Environment,
		ConnectedAt:  time.Now().UTC(),
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return ConnectResult{}, fmt.Errorf("persist tokens: %w", err)
	}

	result := ConnectResult{RealmID: realmID}

	// Side verification step: a company info fetch proves the tokens work and
	// gives us a display name. A failure here leaves the connection usable.
	info, err := s.qb.CompanyInfo(ctx, quickbooks.Credentials{
		AccessToken: token.AccessToken,
		RealmID:     realmID,
		BaseURL:     quickbooks.BaseURL(s.cfg.Environment),
	})
	if err != nil {
		s.log.Warn("company info fetch failed after connect", zap.Error(err))
		return result, nil
	}

	settings.CompanyName = info.CompanyName
	if err := s.settings.Save(ctx, settings); err != nil {
		s.log.Warn("persist company name failed", zap.Error(err))
	}
	result.CompanyName = info.CompanyName

	s.log.Info("quickbooks connected",
		zap.String("realm_id", realmID),
		zap.String("company", info.CompanyName),
	)
	return result, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

func (s *service) exchangeCode(ctx context.Context, code string) (tokenResponse, error) {
	values := url.Values{}
	values.Set("grant_type", "authorization_code")
	values.Set("code", code)
	values.Set("redirect_uri", s.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return tokenResponse{}, err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(s.cfg.ClientID + ":" + s.cfg.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return tokenResponse{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return tokenResponse{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return tokenResponse{}, fmt.Errorf("token exchange failed: status %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return tokenResponse{}, fmt.Errorf("decode token response: %w", err)
	}
	if strings.TrimSpace(token.AccessToken) == "" {
		return tokenResponse{}, ErrEmptyTokenResponse
	}
	return token, nil
}

func (s *service) checkConfig() error {
	switch {
	case strings.TrimSpace(s.cfg.ClientID) == "":
		return ErrMissingClientID
	case strings.TrimSpace(s.cfg.ClientSecret) == "":
		return ErrMissingClientSecret
	case strings.TrimSpace(s.cfg.RedirectURI) == "":
		return ErrMissingRedirectURI
	}
	return nil
}

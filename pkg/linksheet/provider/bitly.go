// Package provider implements the remote services the link sheet talks to:
// the Bitly link shortener, Google Drive document metadata and plain HTTP
// page fetches.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultBitlyBaseURL is the Bitly API v4 root.
const DefaultBitlyBaseURL = "https://api-ssl.bitly.com/v4"

// bitlinksPageSize is the page size requested when listing links.
const bitlinksPageSize = 100

// createdAtLayout is the timestamp format Bitly uses (no colon in the offset).
const createdAtLayout = "2006-01-02T15:04:05-0700"

// BitlyConfig configures a Bitly client.
type BitlyConfig struct {
	// Token is the generic access token of the account.
	Token string
	// GroupGUID selects the group whose links are listed and created.
	// Empty means the account's default group.
	GroupGUID string
	// BaseURL overrides DefaultBitlyBaseURL.
	BaseURL string
	// RequestsPerSecond paces API calls. Zero disables pacing.
	RequestsPerSecond float64
	// HTTPClient is the base client the bearer transport wraps.
	HTTPClient *http.Client
}

// Bitly is a client for the subset of the Bitly API v4 the link sheet uses.
type Bitly struct {
	client    *http.Client
	baseURL   string
	groupGUID string
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// BitlyUser is the account the token belongs to.
type BitlyUser struct {
	Login            string       `json:"login"`
	Name             string       `json:"name"`
	DefaultGroupGUID string       `json:"default_group_guid"`
	Emails           []BitlyEmail `json:"emails"`
}

// BitlyEmail is one address registered on the account.
type BitlyEmail struct {
	Email      string `json:"email"`
	IsPrimary  bool   `json:"is_primary"`
	IsVerified bool   `json:"is_verified"`
}

// APIError is a non-2xx response from the Bitly API.
type APIError struct {
	Status      int    `json:"-"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("bitly: %d %s: %s", e.Status, e.Message, e.Description)
	}
	return fmt.Sprintf("bitly: %d %s", e.Status, e.Message)
}

type bitlink struct {
	ID        string `json:"id"`
	Link      string `json:"link"`
	LongURL   string `json:"long_url"`
	CreatedAt string `json:"created_at"`
}

type bitlinksPage struct {
	Links      []bitlink `json:"links"`
	Pagination struct {
		Next  string `json:"next"`
		Page  int    `json:"page"`
		Total int    `json:"total"`
	} `json:"pagination"`
}

type clickSummary struct {
	TotalClicks int64 `json:"total_clicks"`
}

// NewBitly creates a Bitly client authenticating with cfg.Token.
func NewBitly(ctx context.Context, cfg BitlyConfig, logger *zap.Logger) *Bitly {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.HTTPClient)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBitlyBaseURL
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
	return &Bitly{
		client:    oauth2.NewClient(ctx, ts),
		baseURL:   strings.TrimRight(baseURL, "/"),
		groupGUID: cfg.GroupGUID,
		limiter:   limiter,
		logger:    logger,
	}
}

// User returns the account the token belongs to.
func (b *Bitly) User(ctx context.Context) (*BitlyUser, error) {
	var user BitlyUser
	if err := b.do(ctx, http.MethodGet, b.baseURL+"/user", nil, &user); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// PrimaryEmail returns the account's primary email address, or its login
// when no email is registered.
func (b *Bitly) PrimaryEmail(ctx context.Context) (string, error) {
	user, err := b.User(ctx)
	if err != nil {
		return "", err
	}
	for _, e := range user.Emails {
		if e.IsPrimary {
			return e.Email, nil
		}
	}
	if len(user.Emails) > 0 {
		return user.Emails[0].Email, nil
	}
	return user.Login, nil
}

// ListLinks returns every link of the group, following pagination.
func (b *Bitly) ListLinks(ctx context.Context) ([]models.Link, error) {
	group, err := b.group(ctx)
	if err != nil {
		return nil, err
	}

	next := fmt.Sprintf("%s/groups/%s/bitlinks?size=%d", b.baseURL, url.PathEscape(group), bitlinksPageSize)
	var links []models.Link
	for next != "" {
		var page bitlinksPage
		if err := b.do(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, fmt.Errorf("list bitlinks: %w", err)
		}
		for _, bl := range page.Links {
			link, err := bl.toLink()
			if err != nil {
				return nil, err
			}
			links = append(links, link)
		}
		b.logger.Debug("Listed bitlinks page",
			zap.Int("page", page.Pagination.Page),
			zap.Int("links", len(page.Links)),
			zap.Int("total", page.Pagination.Total))
		next = page.Pagination.Next
	}
	return links, nil
}

// ClickCount returns the all-time click count of the link with the given id.
func (b *Bitly) ClickCount(ctx context.Context, id string) (int64, error) {
	endpoint := fmt.Sprintf("%s/bitlinks/%s/clicks/summary?unit=day&units=-1", b.baseURL, id)
	var summary clickSummary
	if err := b.do(ctx, http.MethodGet, endpoint, nil, &summary); err != nil {
		return 0, fmt.Errorf("clicks of %s: %w", id, err)
	}
	return summary.TotalClicks, nil
}

// Shorten creates a short link for longURL.
func (b *Bitly) Shorten(ctx context.Context, longURL string) (models.Link, error) {
	body := map[string]string{"long_url": longURL}
	if b.groupGUID != "" {
		body["group_guid"] = b.groupGUID
	}
	var bl bitlink
	if err := b.do(ctx, http.MethodPost, b.baseURL+"/shorten", body, &bl); err != nil {
		return models.Link{}, fmt.Errorf("shorten %s: %w", longURL, err)
	}
	return bl.toLink()
}

func (b *Bitly) group(ctx context.Context) (string, error) {
	if b.groupGUID != "" {
		return b.groupGUID, nil
	}
	user, err := b.User(ctx)
	if err != nil {
		return "", err
	}
	if user.DefaultGroupGUID == "" {
		return "", fmt.Errorf("bitly account %q has no default group", user.Login)
	}
	b.groupGUID = user.DefaultGroupGUID
	return b.groupGUID, nil
}

func (b *Bitly) do(ctx context.Context, method, endpoint string, in, out any) error {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (bl bitlink) toLink() (models.Link, error) {
	link := models.Link{ID: bl.ID, ShortURL: bl.Link, LongURL: bl.LongURL}
	if bl.CreatedAt == "" {
		return link, nil
	}
	created, err := parseCreatedAt(bl.CreatedAt)
	if err != nil {
		return models.Link{}, fmt.Errorf("link %s: %w", bl.ID, err)
	}
	link.CreatedAt = created
	return link, nil
}

func parseCreatedAt(s string) (time.Time, error) {
	if t, err := time.Parse(createdAtLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Package gmail sends mail through the Gmail REST API using an OAuth2
// refresh token, so no SMTP credentials are needed.
package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// SendScope is the only OAuth2 scope the client needs.
const SendScope = gmailapi.GmailSendScope

// ErrNotConfigured is returned when credentials are missing.
var ErrNotConfigured = errors.New("gmail: not configured")

// Config holds the OAuth2 client and the refresh token issued for User.
type Config struct {
	User         string
	ClientID     string
	ClientSecret string
	RefreshToken string
	// FromName is the display name used in the From header.
	FromName string
}

// Message is a single outgoing email with text and HTML alternatives.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client implements Sender against the Gmail API.
type Client struct {
	from     string
	fromName string
	svc      *gmailapi.Service
}

var _ Sender = (*Client)(nil)

// NewClient creates a Client whose transport refreshes access tokens from
// cfg.RefreshToken on demand.
func NewClient(cfg Config) (*Client, error) {
	if cfg.User == "" || cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, ErrNotConfigured
	}
	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{SendScope},
	}

	// Token refreshes use their own client; the service context must outlive
	// any single request.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: 30 * time.Second})
	ts := oc.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("gmail: create service: %w", err)
	}
	return NewClientWithService(cfg.User, cfg.FromName, svc), nil
}

// NewClientWithService creates a Client on an already configured service.
func NewClientWithService(from, fromName string, svc *gmailapi.Service) *Client {
	return &Client{from: from, fromName: fromName, svc: svc}
}

// Send builds the MIME message and submits it as the authorised user.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("gmail: no recipients")
	}

	raw, err := BuildMIME(c.from, c.fromName, msg)
	if err != nil {
		return err
	}

	_, err = c.svc.Users.Messages.Send("me", &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail: send: %w", err)
	}
	return nil
}

package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"

	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// newTestClient points a Client at srv instead of the Gmail API.
func newTestClient(t *testing.T, srv *httptest.Server, fromName string) *Client {
	t.Helper()
	svc, err := gmailapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return NewClientWithService("studio@example.com", fromName, svc)
}

func decodeSent(t *testing.T, r *http.Request) *mail.Message {
	t.Helper()
	var body struct {
		Raw string `json:"raw"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	raw, err := base64.URLEncoding.DecodeString(body.Raw)
	if err != nil {
		t.Fatalf("raw is not base64url: %v", err)
	}
	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("parse message: %v", err)
	}
	return msg
}

func readParts(t *testing.T, msg *mail.Message) map[string]string {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("content type: %v", err)
	}
	if mediaType != "multipart/alternative" {
		t.Fatalf("expected multipart/alternative, got %s", mediaType)
	}
	parts := map[string]string{}
	mr := multipart.NewReader(msg.Body, params["boundary"])
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		// multipart.Reader decodes quoted-printable transparently.
		b, _ := io.ReadAll(p)
		ct, _, _ := mime.ParseMediaType(p.Header.Get("Content-Type"))
		parts[ct] = string(b)
	}
	return parts
}

func TestClient_Send(t *testing.T) {
	var got *mail.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/gmail/v1/users/me/messages/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		got = decodeSent(t, r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "Lumina Atelier")
	err := c.Send(context.Background(), Message{
		To:      []string{"owner@example.com"},
		Subject: "New booking enquiry from Mira & Dev",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
		ReplyTo: "mira@example.com",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if from := got.Header.Get("From"); from != `"Lumina Atelier" <studio@example.com>` {
		t.Errorf("unexpected From %q", from)
	}
	if to := got.Header.Get("To"); to != "owner@example.com" {
		t.Errorf("unexpected To %q", to)
	}
	if rt := got.Header.Get("Reply-To"); rt != "mira@example.com" {
		t.Errorf("unexpected Reply-To %q", rt)
	}
	if s := got.Header.Get("Subject"); s != "New booking enquiry from Mira & Dev" {
		t.Errorf("unexpected Subject %q", s)
	}

	parts := readParts(t, got)
	if parts["text/plain"] != "plain body" {
		t.Errorf("unexpected text part %q", parts["text/plain"])
	}
	if parts["text/html"] != "<p>html body</p>" {
		t.Errorf("unexpected html part %q", parts["text/html"])
	}
}

func TestClient_SendUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"insufficient scope"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	err := c.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "x", Text: "y"})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusForbidden {
		t.Errorf("expected 403 googleapi error, got %v", err)
	}
}

func TestClient_SendNoRecipients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without recipients")
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	if err := c.Send(context.Background(), Message{Subject: "x"}); err == nil {
		t.Error("expected error for empty recipient list")
	}
}

func TestBuildMIME_EncodesNonASCIISubject(t *testing.T) {
	raw, err := BuildMIME("studio@example.com", "", Message{
		To:      []string{"a@example.com"},
		Subject: "Soirée enquiry",
		Text:    "café",
	})
	if err != nil {
		t.Fatalf("BuildMIME: %v", err)
	}
	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	header := msg.Header.Get("Subject")
	if !strings.HasPrefix(header, "=?utf-8?q?") {
		t.Errorf("expected Q-encoded subject, got %q", header)
	}
	decoded, err := new(mime.WordDecoder).DecodeHeader(header)
	if err != nil || decoded != "Soirée enquiry" {
		t.Errorf("subject round trip = %q, %v", decoded, err)
	}
	if parts := readParts(t, msg); parts["text/plain"] != "café" {
		t.Errorf("unexpected text part %q", parts["text/plain"])
	}
}

func TestBuildMIME_RejectsHeaderInjection(t *testing.T) {
	_, err := BuildMIME("studio@example.com", "", Message{
		To:      []string{"a@example.com"},
		ReplyTo: "x@example.com\r\nBcc: victim@example.com",
	})
	if err == nil {
		t.Error("expected error for CRLF in reply-to")
	}
}

func TestNewClient_NotConfigured(t *testing.T) {
	if _, err := NewClient(Config{User: "studio@example.com"}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

// Package cloudinary signs direct browser uploads and builds delivery URLs
// for the Cloudinary image CDN. Uploads themselves go straight from the
// admin panel to Cloudinary; this package never talks to the API.
package cloudinary

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	cldsdk "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
)

// ErrNotConfigured is returned when the cloud name or credentials are missing.
var ErrNotConfigured = errors.New("cloudinary: not configured")

// Config holds the account credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// UploadParams are the optional fields a signed upload may carry.
type UploadParams struct {
	Folder    string `json:"folder,omitempty"`
	PublicID  string `json:"publicId,omitempty"`
	Eager     string `json:"eager,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// UploadSignature is returned to the admin panel, which posts it to the
// Cloudinary upload endpoint together with the file. Params holds exactly
// the signed fields; timestamp stays numeric.
type UploadSignature struct {
	Signature string         `json:"signature"`
	Timestamp int64          `json:"timestamp"`
	APIKey    string         `json:"apiKey"`
	CloudName string         `json:"cloudName"`
	Params    map[string]any `json:"params"`
}

// Signer creates upload signatures.
type Signer interface {
	CreateUploadSignature(p UploadParams) (*UploadSignature, error)
}

// Client implements Signer and builds delivery URLs.
type Client struct {
	cfg Config
	cld *cldsdk.Cloudinary
	now func() time.Time
}

var _ Signer = (*Client)(nil)

// NewClient creates a Client.
func NewClient(cfg Config) *Client {
	return NewClientWithClock(cfg, time.Now)
}

// NewClientWithClock is NewClient with a fixed time source.
func NewClientWithClock(cfg Config, now func() time.Time) *Client {
	c := &Client{cfg: cfg, now: now}
	if cfg.CloudName == "" {
		return c
	}
	cld, err := cldsdk.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return c
	}
	cld.Config.URL.Secure = true
	cld.Config.URL.ForceVersion = false
	cld.Config.URL.Analytics = false
	c.cld = cld
	return c
}

func (c *Client) configured() bool {
	return c.cfg.CloudName != "" && c.cfg.APIKey != "" && c.cfg.APISecret != ""
}

// CreateUploadSignature signs p. A zero timestamp is replaced with the
// current Unix time; empty fields are left out of both the signature and
// the returned params.
func (c *Client) CreateUploadSignature(p UploadParams) (*UploadSignature, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}

	ts := p.Timestamp
	if ts == 0 {
		ts = c.now().Unix()
	}

	signed := map[string]string{
		"timestamp": strconv.FormatInt(ts, 10),
		"folder":    p.Folder,
		"public_id": p.PublicID,
		"eager":     p.Eager,
	}
	sig, err := SignParams(signed, c.cfg.APISecret)
	if err != nil {
		return nil, err
	}

	params := map[string]any{"timestamp": ts}
	for k, v := range signed {
		if k != "timestamp" && v != "" {
			params[k] = v
		}
	}

	return &UploadSignature{
		Signature: sig,
		Timestamp: ts,
		APIKey:    c.cfg.APIKey,
		CloudName: c.cfg.CloudName,
		Params:    params,
	}, nil
}

// SignParams computes the Cloudinary API request signature over the
// non-empty params.
func SignParams(params map[string]string, apiSecret string) (string, error) {
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	sig, err := api.SignParameters(values, apiSecret)
	if err != nil {
		return "", fmt.Errorf("cloudinary: sign: %w", err)
	}
	return sig, nil
}

// Transform describes an on-the-fly image transformation. Zero values fall
// back to automatic format, quality, crop "fill" and gravity "auto".
type Transform struct {
	Width   int
	Height  int
	Quality int
	Crop    string
	Gravity string
	Format  string
}

func (t Transform) String() string {
	crop := t.Crop
	if crop == "" {
		crop = "fill"
	}
	gravity := t.Gravity
	if gravity == "" {
		gravity = "auto"
	}
	format := t.Format
	if format == "" {
		format = "auto"
	}
	quality := "auto"
	if t.Quality > 0 {
		quality = strconv.Itoa(t.Quality)
	}

	parts := []string{"c_" + crop, "f_" + format, "g_" + gravity}
	if t.Height > 0 {
		parts = append(parts, "h_"+strconv.Itoa(t.Height))
	}
	parts = append(parts, "q_"+quality)
	if t.Width > 0 {
		parts = append(parts, "w_"+strconv.Itoa(t.Width))
	}
	return strings.Join(parts, ",")
}

// URL returns the secure delivery URL for publicID with t applied. Values
// that are already absolute URLs are returned unchanged, and so is
// publicID when no cloud is configured or the URL cannot be built.
func (c *Client) URL(publicID string, t Transform) string {
	if strings.HasPrefix(publicID, "http://") || strings.HasPrefix(publicID, "https://") || c.cld == nil {
		return publicID
	}

	img, err := c.cld.Image(strings.TrimPrefix(publicID, "/"))
	if err != nil {
		return publicID
	}
	img.Transformation = t.String()

	u, err := img.String()
	if err != nil {
		return publicID
	}
	return u
}

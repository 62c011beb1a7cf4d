// Package whatsapp builds wa.me click-to-chat links and their QR codes.
package whatsapp

import (
	"errors"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ErrNotE164 is returned for numbers without the leading "+".
var ErrNotE164 = errors.New("whatsapp: phone number must be in E.164 format (start with '+')")

const (
	MinQRSize     = 128
	MaxQRSize     = 1024
	DefaultQRSize = 256
)

// BuildLink returns https://wa.me/<digits>?text=<message>. The message is
// omitted when empty.
func BuildLink(phoneE164, message string) (string, error) {
	if !strings.HasPrefix(phoneE164, "+") {
		return "", ErrNotE164
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phoneE164)
	if digits == "" {
		return "", ErrNotE164
	}

	link := "https://wa.me/" + digits
	if message != "" {
		link += "?" + url.Values{"text": {message}}.Encode()
	}
	return link, nil
}

// QRCode renders content as a PNG of size x size pixels. size is clamped
// to [MinQRSize, MaxQRSize].
func QRCode(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, ClampSize(size))
}

// ClampSize bounds size to the supported QR range; zero selects the default.
func ClampSize(size int) int {
	switch {
	case size == 0:
		return DefaultQRSize
	case size < MinQRSize:
		return MinQRSize
	case size > MaxQRSize:
		return MaxQRSize
	}
	return size
}

package gmail

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"
)

// BuildMIME renders msg as an RFC 5322 multipart/alternative message.
func BuildMIME(from, fromName string, msg Message) ([]byte, error) {
	if from == "" {
		return nil, errors.New("gmail: empty sender")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	sender := mail.Address{Name: fromName, Address: from}
	to := make([]string, len(msg.To))
	for i, addr := range msg.To {
		if strings.ContainsAny(addr, "\r\n") {
			return nil, fmt.Errorf("gmail: invalid recipient %q", addr)
		}
		to[i] = addr
	}
	if strings.ContainsAny(msg.ReplyTo, "\r\n") {
		return nil, fmt.Errorf("gmail: invalid reply-to %q", msg.ReplyTo)
	}

	var hdr bytes.Buffer
	fmt.Fprintf(&hdr, "From: %s\r\n", sender.String())
	fmt.Fprintf(&hdr, "To: %s\r\n", strings.Join(to, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&hdr, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&hdr, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&hdr, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	hdr.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&hdr, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())

	text := msg.Text
	if text == "" {
		text = msg.HTML
	}
	if err := writePart(mw, "text/plain; charset=utf-8", text); err != nil {
		return nil, err
	}
	if msg.HTML != "" {
		if err := writePart(mw, "text/html; charset=utf-8", msg.HTML); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	return append(hdr.Bytes(), buf.Bytes()...), nil
}

func writePart(mw *multipart.Writer, contentType, body string) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	h.Set("Content-Transfer-Encoding", "quoted-printable")
	pw, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	qw := quotedprintable.NewWriter(pw)
	if _, err := qw.Write([]byte(body)); err != nil {
		return err
	}
	return qw.Close()
}

package notify

import (
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"github.com/lumina/backend/internal/model"
)

const dateLayout = "2006-01-02"

var funcs = map[string]any{
	"orNA": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
	"orNone": func(s string) string {
		if s == "" {
			return "(none)"
		}
		return s
	},
	"lines": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
	"join": strings.Join,
}

var bookingText = texttemplate.Must(texttemplate.New("booking.txt").Funcs(funcs).Parse(
	`New booking enquiry

Couple: {{.CoupleName}}
Email: {{.Email}}
Phone: {{orNA .Phone}}
Event Date: {{.EventDate}}
Event Location: {{.EventLocation}}
Services Interested: {{join .Services ", "}}

Message:
{{orNone .Message}}`))

var bookingHTML = htmltemplate.Must(htmltemplate.New("booking.html").Funcs(funcs).Parse(
	`<h2 style="font-family: 'Helvetica Neue', Arial, sans-serif;">New booking enquiry</h2>
<p><strong>Couple:</strong> {{.CoupleName}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{orNA .Phone}}</p>
<p><strong>Event Date:</strong> {{.EventDate}}</p>
<p><strong>Event Location:</strong> {{.EventLocation}}</p>
<p><strong>Services Interested:</strong> {{join .Services ", "}}</p>
<p><strong>Message:</strong></p>
<p>{{if .Message}}{{range $i, $l := lines .Message}}{{if $i}}<br/>{{end}}{{$l}}{{end}}{{else}}(none){{end}}</p>
`))

var contactText = texttemplate.Must(texttemplate.New("contact.txt").Funcs(funcs).Parse(
	`New contact enquiry

Name: {{.Name}}
Email: {{.Email}}
Phone: {{orNA .Phone}}

Message:
{{.Message}}`))

var contactHTML = htmltemplate.Must(htmltemplate.New("contact.html").Funcs(funcs).Parse(
	`<h2 style="font-family: 'Helvetica Neue', Arial, sans-serif;">New contact enquiry</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{orNA .Phone}}</p>
<p><strong>Message:</strong></p>
<p>{{range $i, $l := lines .Message}}{{if $i}}<br/>{{end}}{{$l}}{{end}}</p>
`))

type bookingView struct {
	CoupleName    string
	Email         string
	Phone         string
	EventDate     string
	EventLocation string
	Services      []string
	Message       string
}

func newBookingView(b *model.Booking) bookingView {
	return bookingView{
		CoupleName:    b.CoupleName,
		Email:         b.Email,
		Phone:         b.Phone,
		EventDate:     b.EventDate.Format(dateLayout),
		EventLocation: b.EventLocation,
		Services:      b.ServicesInterested,
		Message:       b.Message,
	}
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func render(t executor, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

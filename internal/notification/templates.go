package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// Kind identifies a notification template.
type Kind string

const (
	KindRegistrationReceived Kind = "registration_received"
	KindPaymentVerified      Kind = "payment_verified"
)

// TemplateData is the data available to every template.
type TemplateData struct {
	EventName  string
	LeaderName string
	TeamName   string
	TeamID     string
}

type template struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

var templates = map[Kind]template{
	KindRegistrationReceived: {
		subject: texttemplate.Must(texttemplate.New("registration_received_subject").Parse("Registration received: {{.TeamName}}")),
		html: htmltemplate.Must(htmltemplate.New("registration_received").Parse(`<p>Hi {{.LeaderName}},</p>
<p>We received the registration for <strong>{{.TeamName}}</strong> at {{.EventName}}.</p>
<p>Your payment receipt is waiting for review. We will email you again once it is verified.</p>
<p>Team ID: <code>{{.TeamID}}</code></p>`)),
		text: texttemplate.Must(texttemplate.New("registration_received").Parse(`Hi {{.LeaderName}},

We received the registration for {{.TeamName}} at {{.EventName}}.
Your payment receipt is waiting for review. We will email you again once it is verified.

Team ID: {{.TeamID}}
`)),
	},
	KindPaymentVerified: {
		subject: texttemplate.Must(texttemplate.New("payment_verified_subject").Parse("Payment Verified: {{.TeamName}}")),
		html: htmltemplate.Must(htmltemplate.New("payment_verified").Parse(`<p>Hi {{.LeaderName}},</p>
<p>The payment for <strong>{{.TeamName}}</strong> has been verified. Your team is confirmed for {{.EventName}}.</p>
<p>Bring a photo ID for every member to the check-in desk.</p>`)),
		text: texttemplate.Must(texttemplate.New("payment_verified").Parse(`Hi {{.LeaderName}},

The payment for {{.TeamName}} has been verified. Your team is confirmed for {{.EventName}}.
Bring a photo ID for every member to the check-in desk.
`)),
	},
}

// rendered is the output of render.
type rendered struct {
	Subject string
	HTML    string
	Text    string
}

func render(kind Kind, data TemplateData) (rendered, error) {
	tpl, ok := templates[kind]
	if !ok {
		return rendered{}, fmt.Errorf("unknown notification kind %q", kind)
	}

	var subj, html, text bytes.Buffer
	if err := tpl.subject.Execute(&subj, data); err != nil {
		return rendered{}, fmt.Errorf("render %s subject: %w", kind, err)
	}
	if err := tpl.html.Execute(&html, data); err != nil {
		return rendered{}, fmt.Errorf("render %s html: %w", kind, err)
	}
	if err := tpl.text.Execute(&text, data); err != nil {
		return rendered{}, fmt.Errorf("render %s text: %w", kind, err)
	}

	return rendered{Subject: subj.String(), HTML: html.String(), Text: text.String()}, nil
}

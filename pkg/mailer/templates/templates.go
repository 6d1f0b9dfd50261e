// Package templates renders the transactional emails sent by the worker.
package templates

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	"strings"
	texttpl "text/template"
)

const (
	Welcome   = "welcome"
	MenuReady = "menu_ready"
)

// ShoppingItem is one line of the menu_ready email. Field names are the
// template keys, so they stay untagged.
type ShoppingItem struct {
	Name     string
	Quantity float64
	Unit     string
}

type set struct {
	subject string
	text    *texttpl.Template
	html    *htmltpl.Template
}

var registry = map[string]set{
	Welcome: {
		subject: "Welcome to {{.AppName}}",
		text: texttpl.Must(texttpl.New("welcome.txt").Parse(
			"Hi {{.Username}},\n\nYour account {{.Email}} is ready. Generate your first weekly menu from your profile.\n")),
		html: htmltpl.Must(htmltpl.New("welcome.html").Parse(
			`<p>Hi {{.Username}},</p><p>Your account <b>{{.Email}}</b> is ready. Generate your first weekly menu from your profile.</p>`)),
	},
	MenuReady: {
		subject: "Your weekly menu is ready",
		text: texttpl.Must(texttpl.New("menu_ready.txt").Parse(
			"Hi {{.Username}},\n\nYour menu has {{.MenuSize}} recipes. Shopping list:\n{{range .Items}}- {{.Name}} ({{.Quantity}} {{.Unit}})\n{{end}}")),
		html: htmltpl.Must(htmltpl.New("menu_ready.html").Parse(
			`<p>Hi {{.Username}},</p><p>Your menu has {{.MenuSize}} recipes. Shopping list:</p><ul>{{range .Items}}<li>{{.Name}} ({{.Quantity}} {{.Unit}})</li>{{end}}</ul>`)),
	},
}

// Render returns subject, text and html for the named template.
// data is the decoded job payload.
func Render(name string, data map[string]any) (string, string, string, error) {
	s, ok := registry[strings.ToLower(name)]
	if !ok {
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
	if data == nil {
		data = map[string]any{}
	}
	subject, err := execText(texttpl.Must(texttpl.New("subject").Parse(s.subject)), data)
	if err != nil {
		return "", "", "", err
	}
	text, err := execText(s.text, data)
	if err != nil {
		return "", "", "", err
	}
	var buf bytes.Buffer
	if err := s.html.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return subject, text, buf.String(), nil
}

func execText(t *texttpl.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

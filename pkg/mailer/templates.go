package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<html>
  <body style="font-family: sans-serif;">
    <h2>Welcome to {{.AppName}}, {{.FirstName}}!</h2>
    <p>Your account is ready. Log in with your email address to list a
    place or book your next stay.</p>
  </body>
</html>
`))

// Render produces subject, text, and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var buf bytes.Buffer
		if err = welcomeTmpl.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = fmt.Sprintf("Welcome to %v", data["AppName"])
		text = fmt.Sprintf("Welcome to %v, %v! Your account is ready.", data["AppName"], data["FirstName"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}

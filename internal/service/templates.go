package service

import (
	"bytes"
	"html/template"
)

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "invoice"}}<p>Hello {{.Name}},</p>
<p>Please find attached invoice {{.Number}} for a total of <strong>{{.Total}}</strong>.</p>
<p>Thank you for your order.</p>{{end}}
{{define "contract_signed"}}<p>Hello {{.Name}},</p>
<p>We received your signature for the {{.Type}} contract. A copy is attached.</p>
<p>An administrator will review and activate it shortly.</p>{{end}}
{{define "contract_approved"}}<p>Hello {{.Name}},</p>
<p>Your {{.Type}} contract is now active. The final document is attached.</p>{{end}}
`))

func renderMail(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package templates

import (
	"fmt"
	"html"
	"strings"
)

const emailHead = `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: Arial, Helvetica, sans-serif; margin: 0; padding: 0; background-color: #f1f3f5; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background-color: #1d3557; padding: 32px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; font-weight: 700; }
    .content { padding: 32px 30px; color: #212529; line-height: 1.6; font-size: 15px; }
    .resumo { width: 100%%; border-collapse: collapse; margin: 16px 0; }
    .resumo td { border: 1px solid #dee2e6; padding: 8px 12px; }
    .resumo td.valor { font-weight: 700; text-align: right; }
    .botao { display: inline-block; background-color: #1d3557; color: #fff; padding: 10px 18px; text-decoration: none; border-radius: 4px; }
    .footer { padding: 24px; text-align: center; color: #6c757d; font-size: 12px; border-top: 1px solid #dee2e6; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
`

const emailFoot = `
    </div>
    <div class="footer">
      <p>Corregedoria &middot; mensagem automática, não responda</p>
    </div>
  </div>
</body>
</html>`

// RenderGenericEmail generates branded HTML for a generic email.
// The subject is displayed in the header banner, and bodyContent is plain text
// that gets HTML-escaped and has newlines converted to <br> tags.
func RenderGenericEmail(subject, bodyContent string) string {
	escaped := html.EscapeString(bodyContent)
	htmlBody := strings.ReplaceAll(escaped, "\n", "<br>")

	safeSubject := html.EscapeString(subject)
	return fmt.Sprintf(emailHead, safeSubject, safeSubject) + "      " + htmlBody + emailFoot
}

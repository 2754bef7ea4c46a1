package scheduler

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendgridMailer sends emails through the SendGrid v3 API
type SendgridMailer struct {
	APIKey string
	From   string
	Nome   string
}

// Send delivers one message to every recipient
func (m SendgridMailer) Send(ctx context.Context, para []string, assunto, html, texto string, anexos ...Anexo) error {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(m.Nome, m.From))
	message.Subject = assunto

	p := mail.NewPersonalization()
	for _, email := range para {
		p.AddTos(mail.NewEmail("", email))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/plain", texto), mail.NewContent("text/html", html))

	for _, a := range anexos {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Conteudo))
		att.SetType(a.Tipo)
		att.SetFilename(a.Nome)
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}

	client := sendgrid.NewSendClient(m.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("sendgrid status %d", response.StatusCode)
	}
	return nil
}

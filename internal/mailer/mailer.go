package mailer

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"time"

	mail "github.com/go-mail/mail/v2"
	qrcode "github.com/skip2/go-qrcode"
)

//go:embed "templates"
var templateFS embed.FS

// Attachment is an inline file embedded into a message; templates reference
// it by cid:Name.
type Attachment struct {
	Name string
	Data []byte
}

type Mailer interface {
	Send(recipient, templateFile string, data any, attachments ...Attachment) error
}

// PreferenceQR renders a payment preference reference as a QR code PNG, shown
// in the receipt so the buyer can pull up their checkout at the box office.
func PreferenceQR(preferenceID string) (Attachment, error) {
	png, err := qrcode.Encode(preferenceID, qrcode.Medium, 256)
	if err != nil {
		return Attachment{}, err
	}

	return Attachment{Name: "preference-qr.png", Data: png}, nil
}

type SMTPMailer struct {
	dialer *mail.Dialer
	sender string
}

func NewSMTPMailer(host string, port int, username, password, sender string) SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return SMTPMailer{
		dialer: dialer,
		sender: sender,
	}
}

func (m SMTPMailer) Send(recipient, templateFile string, data any, attachments ...Attachment) error {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return err
	}

	subject := new(bytes.Buffer)
	err = tmpl.ExecuteTemplate(subject, "subject", data)
	if err != nil {
		return err
	}

	plainBody := new(bytes.Buffer)
	err = tmpl.ExecuteTemplate(plainBody, "plainBody", data)
	if err != nil {
		return err
	}

	htmlBody := new(bytes.Buffer)
	err = tmpl.ExecuteTemplate(htmlBody, "htmlBody", data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	for _, att := range attachments {
		data := att.Data
		msg.Embed(att.Name, mail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	return m.dialer.DialAndSend(msg)
}

package email

import (
	"crypto/tls"
	"fmt"
	"strconv"

	"github.com/wneessen/go-mail"
)

// Client representa o cliente de correio eletrónico
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
}

// NewClient cria uma nova instância do cliente de email
func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("porta SMTP inválida: %w", err)
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// SendEmail envia uma mensagem de correio eletrónico
func (c *Client) SendEmail(to, subject, htmlBody string) error {
	m := mail.NewMsg()

	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("erro ao configurar o remetente: %w", err)
	}

	if err := m.To(to); err != nil {
		return fmt.Errorf("erro ao configurar o destinatário: %w", err)
	}

	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("erro ao criar o cliente SMTP (host=%s port=%d): %w", c.host, c.port, err)
	}

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar o email para %s: %w", to, err)
	}

	return nil
}

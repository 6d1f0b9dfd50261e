package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/fitbalance-api/pkg/mailer/templates"
)

// Sender is satisfied by *Mailgun.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

var _ Sender = (*Mailgun)(nil)

// ErrBadJob marks messages that can never be delivered and should be dropped.
var ErrBadJob = errors.New("bad email job")

// Render resolves the job into subject, text and html. A template wins over
// the raw fields.
func (j EmailJob) Render() (subject, text, html string, err error) {
	if j.Template != "" {
		return templates.Render(j.Template, j.Data)
	}
	if j.Subject == "" || (j.Text == "" && j.HTML == "") {
		return "", "", "", fmt.Errorf("%w: subject with text or html required", ErrBadJob)
	}
	return j.Subject, j.Text, j.HTML, nil
}

// Deliver decodes one queue message, renders it and sends it. Errors wrapping
// ErrBadJob are permanent; any other error is worth a retry.
func Deliver(ctx context.Context, s Sender, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	subject, text, html, err := job.Render()
	if err != nil {
		if errors.Is(err, ErrBadJob) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return s.Send(c, job.To, subject, text, html)
}

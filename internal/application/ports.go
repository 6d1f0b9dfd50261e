package application

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitbalance-api/pkg/helpers"
	"github.com/oksasatya/fitbalance-api/pkg/mailer"
)

// PasswordHasher is satisfied by helpers.Bcrypt.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(hash, plain string) bool
}

// JobPublisher is satisfied by *helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ImageStore is satisfied by helpers.GCSUploader.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

var (
	_ PasswordHasher = helpers.Bcrypt{}
	_ JobPublisher   = (*helpers.RabbitPublisher)(nil)
	_ ImageStore     = helpers.GCSUploader{}
)

// publish enqueues an email job. Failures are logged and swallowed.
func publish(ctx context.Context, jobs JobPublisher, logger logrus.FieldLogger, job mailer.EmailJob) {
	if jobs == nil {
		return
	}
	if err := jobs.PublishJSON(ctx, job); err != nil {
		helpers.LogError(logger, "publish email job failed", err, logrus.Fields{"template": job.Template, "to": job.To})
	}
}

// internal/notify/notifier.go

// Package notify delivers best-effort notifications after an accepted
// submission: a confirmation email to the applicant (SES) and an optional
// admin alert (SNS). Failures are logged and swallowed; they never surface to
// the submitter or roll back the committed record.
package notify

import (
	"context"
	"fmt"

	"competition-intake/internal/common/config"
	"competition-intake/internal/common/errors"
	"competition-intake/internal/common/logger"
	"competition-intake/internal/common/metrics"
	"competition-intake/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Interfaces over the AWS clients so tests can substitute them.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Notifier struct {
	cfg       config.NotificationConfig
	logger    logger.Logger
	sesClient SESAPI
	snsClient SNSAPI
}

// New builds a Notifier with real AWS clients. Disabled channels skip client
// construction entirely.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	n := &Notifier{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
	}

	if !cfg.Email.Enabled && !cfg.Admin.Enabled {
		return n, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Email.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	if cfg.Email.Enabled {
		n.sesClient = ses.NewFromConfig(awsCfg)
	}
	if cfg.Admin.Enabled {
		n.snsClient = sns.NewFromConfig(awsCfg)
	}
	return n, nil
}

// NewWithClients wires explicit clients; used by tests.
func NewWithClients(cfg config.NotificationConfig, log logger.Logger, sesClient SESAPI, snsClient SNSAPI) *Notifier {
	return &Notifier{
		cfg:       cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "notify"}),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

// Submitted fires all configured channels for a newly created record.
func (n *Notifier) Submitted(ctx context.Context, app *models.Application) {
	if n.cfg.Email.Enabled && n.sesClient != nil {
		if err := n.sendConfirmation(ctx, app); err != nil {
			metrics.NotificationsFailed.WithLabelValues("email").Inc()
			n.logger.WithError(errors.NewNotificationSendFailedError("email", err)).Error(
				"confirmation email failed",
				map[string]interface{}{"applicationId": app.ID},
			)
		} else {
			metrics.NotificationsSent.WithLabelValues("email").Inc()
		}
	}

	if n.cfg.Admin.Enabled && n.snsClient != nil {
		if err := n.sendAdminAlert(ctx, app); err != nil {
			metrics.NotificationsFailed.WithLabelValues("admin_alert").Inc()
			n.logger.WithError(errors.NewNotificationSendFailedError("admin_alert", err)).Error(
				"admin alert failed",
				map[string]interface{}{"applicationId": app.ID},
			)
		} else {
			metrics.NotificationsSent.WithLabelValues("admin_alert").Inc()
		}
	}
}

func (n *Notifier) sendConfirmation(ctx context.Context, app *models.Application) error {
	subject := "Game Development Competition Application Confirmation"
	htmlBody := fmt.Sprintf(`<h1>Application Received</h1>
<p>Dear %s,</p>
<p>Thank you for submitting your application to the Game Development Competition!</p>
<p>Your application ID is: %s</p>
<p>We will review your submission and contact you through your provided email (%s) or Discord ID (%s).</p>
<br/>
<p>Best regards,</p>
<p>The Competition Team</p>`, app.Name, app.ID, app.Email, app.DiscordID)

	source := n.cfg.Email.FromAddress
	if n.cfg.Email.FromName != "" {
		source = fmt.Sprintf("%s <%s>", n.cfg.Email.FromName, n.cfg.Email.FromAddress)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &sestypes.Destination{
			ToAddresses: []string{app.Email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Html: &sestypes.Content{Data: aws.String(htmlBody)},
			},
		},
	}
	if n.cfg.Email.ReplyTo != "" {
		input.ReplyToAddresses = []string{n.cfg.Email.ReplyTo}
	}

	_, err := n.sesClient.SendEmail(ctx, input)
	if err != nil {
		return err
	}

	n.logger.Info("confirmation email sent", map[string]interface{}{
		"applicationId": app.ID,
		"to":            app.Email,
	})
	return nil
}

func (n *Notifier) sendAdminAlert(ctx context.Context, app *models.Application) error {
	message := fmt.Sprintf("New competition application %s from %s (%s), team %q, game %q",
		app.ID, app.Name, app.Email, app.TeamName, app.GameTitle)

	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.cfg.Admin.TopicARN),
		Subject:  aws.String("New competition application"),
		Message:  aws.String(message),
	})
	if err != nil {
		return err
	}

	n.logger.Info("admin alert published", map[string]interface{}{
		"applicationId": app.ID,
	})
	return nil
}

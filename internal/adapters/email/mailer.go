package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventplanner/internal/domain"
)

// Supported mailer providers.
const (
	ProviderSES       = "ses"
	ProviderNoop      = "noop"
	ProviderSimulated = "simulated"
)

// DefaultSimulatedDelay is how long the simulated mailer pretends a send takes.
const DefaultSimulatedDelay = time.Second

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider       string
	FromAddress    string
	FromName       string
	SimulatedDelay time.Duration
	SES            SESConfig
}

// NewMailer creates a mailer from config. Provider "ses" uses AWS SES and "noop" only logs. An empty
// or "simulated" provider, or "ses" without credentials, waits SimulatedDelay and reports success.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch config.Provider {
	case ProviderSES:
		sesConfig := config.SES
		if sesConfig.AccessKeyID == "" || sesConfig.SecretAccessKey == "" {
			logger.Warn("SES credentials missing, simulating invitation delivery")
			return newSimulatedMailer(config.SimulatedDelay, logger), nil
		}
		if config.FromAddress == "" {
			return nil, fmt.Errorf("ses mailer requires a from address")
		}
		if sesConfig.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES. Use only in development.")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesConfig.AccessKeyID,
					sesConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		return &sesMailer{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
			logger:      logger,
		}, nil
	case ProviderNoop:
		return &noopMailer{logger: logger}, nil
	case "", ProviderSimulated:
		return newSimulatedMailer(config.SimulatedDelay, logger), nil
	default:
		logger.Warn("unknown email provider, simulating delivery", "provider", config.Provider)
		return newSimulatedMailer(config.SimulatedDelay, logger), nil
	}
}

// sesAPI is the subset of the SES client used by sesMailer.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesMailer struct {
	client      sesAPI
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

func (s *sesMailer) Send(ctx context.Context, to, subject, html, text string) error {
	source := s.fromAddress
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if html != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(html),
			Charset: aws.String("UTF-8"),
		}
	}
	if text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(text),
			Charset: aws.String("UTF-8"),
		}
	}
	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	s.logger.InfoContext(ctx, "email sent via SES", "message_id", aws.ToString(result.MessageId))
	return nil
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, to, subject, _, _ string) error {
	n.logger.InfoContext(ctx, "email would be sent (noop)", "to", to, "subject", subject)
	return nil
}

// simulatedMailer stands in for an unconfigured provider so invitation flows work without credentials.
type simulatedMailer struct {
	delay  time.Duration
	logger *slog.Logger
}

func newSimulatedMailer(delay time.Duration, logger *slog.Logger) *simulatedMailer {
	if delay < 0 {
		delay = 0
	}
	return &simulatedMailer{delay: delay, logger: logger}
}

func (m *simulatedMailer) Send(ctx context.Context, to, subject, _, _ string) error {
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	m.logger.InfoContext(ctx, "email delivery simulated", "to", to, "subject", subject)
	return nil
}

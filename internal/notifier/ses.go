package notifier

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"foodapp/internal/config"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SES sends mail through Amazon SES.
type SES struct {
	client sesAPI
	sender string
}

func NewSES(ctx context.Context, cfg config.EmailConfig) (*SES, error) {
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("sender email address is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return &SES{client: ses.NewFromConfig(awsCfg), sender: cfg.SenderEmail}, nil
}

func (s *SES) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(msg.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(msg.HTMLBody),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(msg.TextBody),
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		log.Printf("[MAIL] [ERROR] failed to send %q to %s: %v", msg.Subject, msg.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("[MAIL] [INFO] sent %q to %s", msg.Subject, msg.To)
	return nil
}

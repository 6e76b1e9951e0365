package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"

	"github.com/ai4bmi/factory-pulse/internal/domain"
)

// SNSClient publishes alert notifications to an SNS topic. It is optional:
// the alert endpoint works identically without one, it just skips the
// notification.
type SNSClient struct {
	svc      *sns.Client
	topicArn string
}

func NewSNSClient(region, topicArn string) (*SNSClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
	}, nil
}

// PublishCriticalAlerts sends one digest message covering every machine that
// raised a HIGH severity alert in the current scan.
func (c *SNSClient) PublishCriticalAlerts(ctx context.Context, groups []domain.MachineAlerts) error {
	if len(groups) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("Critical machine alerts\n\n")
	for _, g := range groups {
		for _, a := range g.Alerts {
			if a.Severity != "HIGH" {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s at %s\n", g.MachineID, a.Type, g.Timestamp.Format("2006-01-02 15:04"))
		}
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(fmt.Sprintf("Factory alert: %d machine(s) critical", len(groups))),
		Message:  aws.String(b.String()),
	}

	result, err := c.svc.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}

	log.Info().Str("message_id", aws.ToString(result.MessageId)).Msg("critical alert notification sent")
	return nil
}

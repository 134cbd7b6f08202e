package secretshare

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

// SendShares emails one encoded share to each recipient via AWS SES, so no
// custodian ever sees more than their own share. It requires exactly one
// recipient per share and a configured SES region and sender.
func SendShares(settings *Settings, recipients []string, shares []Share, threshold int) error {
	if len(recipients) != len(shares) {
		return fmt.Errorf("%w: %d recipients for %d shares", ErrInvalidParameters, len(recipients), len(shares))
	}
	if settings.SES.Region == "" || settings.SES.Sender == "" {
		return fmt.Errorf("SES region and sender must be configured")
	}

	sess, err := session.NewSession(&aws.Config{Region: aws.String(settings.SES.Region)})
	if err != nil {
		return fmt.Errorf("creating AWS session: %w", err)
	}
	svc := ses.New(sess)

	for i, recipient := range recipients {
		subject := fmt.Sprintf("Secret share %d of %d", shares[i].Index, len(shares))
		body := fmt.Sprintf(
			"You hold share %d of a split secret. Any %d of the %d shares reconstruct it.\n"+
				"Store this message securely and separately from the other custodians.\n\n%s\n",
			shares[i].Index, threshold, len(shares), EncodeShare(shares[i]))
		input := &ses.SendEmailInput{
			Destination: &ses.Destination{
				ToAddresses: []*string{aws.String(recipient)},
			},
			Message: &ses.Message{
				Body: &ses.Body{
					Text: &ses.Content{
						Charset: aws.String("UTF-8"),
						Data:    aws.String(body),
					},
				},
				Subject: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(subject),
				},
			},
			Source: aws.String(settings.SES.Sender),
		}
		if _, err := svc.SendEmail(input); err != nil {
			return fmt.Errorf("sending share %d to %s: %w", shares[i].Index, recipient, err)
		}
	}
	return nil
}

package notifier

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	config "github.com/vinicinnnn/Cafeteria/configs"
)

type LowStockProduct struct {
	Name      string
	Remaining int
}

// SendLowStockAlert emails the cafeteria manager about products whose stock
// dropped to the alert threshold during an order. Unconfigured addresses
// disable the alert silently.
func SendLowStockAlert(items []LowStockProduct) error {

	if len(items) == 0 {
		return nil
	}

	cfg := config.LoadEmailConfig()

	if cfg.SenderEmail == "" || cfg.ManagerEmail == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {

		log.Printf("Failed to load AWS SDK config for low-stock alert: %v", err)
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	subject := fmt.Sprintf("Cafeteria stock alert: %d product(s) running low", len(items))

	var htmlRows strings.Builder
	var textRows strings.Builder
	for _, item := range items {
		htmlRows.WriteString(fmt.Sprintf("<li>%s: %d left</li>", item.Name, item.Remaining))
		textRows.WriteString(fmt.Sprintf("- %s: %d left\n", item.Name, item.Remaining))
	}

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>The following products are running low after the latest order:</p>
            <ul>%s</ul>
            <p>Please restock before the next service.</p>
        </body>
        </html>`, htmlRows.String())

	bodyText := fmt.Sprintf(
		"The following products are running low after the latest order:\n\n%s\nPlease restock before the next service.",
		textRows.String())

	input := &ses.SendEmailInput{
		Source: aws.String(cfg.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{cfg.ManagerEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	_, err = client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("Failed to send low-stock alert to %s: %v", cfg.ManagerEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Low-stock alert sent to %s for %d product(s)", cfg.ManagerEmail, len(items))
	return nil
}

// Package cloud opens AWS sessions for S3-compatible storage and SES.
package cloud

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"sharedesk/internal/config"
)

// NewSession opens an AWS session. Static keys and a custom endpoint are
// optional so that S3-compatible providers work too.
func NewSession(c config.AWSConfig) (*session.Session, error) {
	awsCfg := &aws.Config{Region: aws.String(c.Region)}
	if c.Endpoint != "" {
		awsCfg.Endpoint = aws.String(c.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if c.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(c.AccessKey, c.SecretKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return sess, nil
}

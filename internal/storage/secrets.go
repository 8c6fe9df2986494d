package storage

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/rotisserie/eris"

	"github.com/intit/supplier-enrich/internal/session"
)

type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// CredentialSource resolves provider credentials by secret name.
type CredentialSource interface {
	Credentials(ctx context.Context, secretID string) (session.Credentials, error)
}

type secretsSource struct {
	client secretsAPI
}

// NewSecretsSource creates a CredentialSource backed by Secrets Manager.
// The secret value is a JSON object with "username" and "password" keys.
func NewSecretsSource(client *secretsmanager.Client) CredentialSource {
	return &secretsSource{client: client}
}

func newSecretsSourceWithAPI(client secretsAPI) CredentialSource {
	return &secretsSource{client: client}
}

func (s *secretsSource) Credentials(ctx context.Context, secretID string) (session.Credentials, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return session.Credentials{}, eris.Wrapf(err, "storage: get secret %q", secretID)
	}

	var creds session.Credentials
	if err := json.Unmarshal([]byte(aws.ToString(out.SecretString)), &creds); err != nil {
		return session.Credentials{}, eris.Wrapf(err, "storage: parse secret %q", secretID)
	}
	if creds.Username == "" || creds.Password == "" {
		return session.Credentials{}, eris.Errorf("storage: secret %q missing username or password", secretID)
	}
	return creds, nil
}

package awsx

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsClient reads Secrets Manager values under a fixed name prefix, with
// an in-process cache. All of this service's secrets live under one prefix
// (e.g. "storefront/"), so callers pass bare names like "JWT_SECRET".
type SecretsClient struct {
	client *secretsmanager.Client
	prefix string
	cache  map[string]string
	mu     sync.RWMutex
}

func NewSecretsClient(cfg sdkaws.Config, prefix string) *SecretsClient {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &SecretsClient{
		client: secretsmanager.NewFromConfig(cfg),
		prefix: prefix,
		cache:  make(map[string]string),
	}
}

// GetSecret fetches the named secret, prepending the client's prefix.
// Values are cached for the process lifetime; secret rotation needs a
// restart to pick up.
func (s *SecretsClient) GetSecret(ctx context.Context, name string) (string, error) {
	full := s.prefix + name

	s.mu.RLock()
	if v, ok := s.cache[full]; ok {
		s.mu.RUnlock()
		return v, nil
	}
	s.mu.RUnlock()

	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: &full})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", full, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", full)
	}

	s.mu.Lock()
	s.cache[full] = *out.SecretString
	s.mu.Unlock()

	return *out.SecretString, nil
}

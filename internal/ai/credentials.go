package ai

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// Service name for the OS credential store.
const credentialService = "tidydocs"

// envVarFor maps a provider to its conventional API key environment variable.
func envVarFor(provider string) string {
	switch strings.ToLower(provider) {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

func keyringKeyFor(provider string) string {
	return strings.ToLower(provider) + "_api_key"
}

// ResolveAPIKey finds the API key for a provider: the environment variable
// takes precedence, then the OS credential store.
func ResolveAPIKey(provider string) (string, error) {
	if env := envVarFor(provider); env != "" {
		if key := strings.TrimSpace(os.Getenv(env)); key != "" {
			return key, nil
		}
	}

	key, err := keyring.Get(credentialService, keyringKeyFor(provider))
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", fmt.Errorf("no API key found for provider %q - set %s or run 'tidydocs auth set %s'",
				provider, envVarFor(provider), strings.ToLower(provider))
		}
		return "", fmt.Errorf("failed to read API key from credential store: %w", err)
	}

	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("stored API key for provider %q is empty", provider)
	}

	return key, nil
}

// StoreAPIKey saves an API key for a provider in the OS credential store.
func StoreAPIKey(provider, key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	if envVarFor(provider) == "" {
		return fmt.Errorf("unsupported AI provider: %s", provider)
	}
	if err := keyring.Set(credentialService, keyringKeyFor(provider), key); err != nil {
		return fmt.Errorf("failed to store API key in credential store: %w", err)
	}
	return nil
}

// DeleteAPIKey removes a stored API key. Deleting a key that does not exist
// is not an error.
func DeleteAPIKey(provider string) error {
	err := keyring.Delete(credentialService, keyringKeyFor(provider))
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete API key from credential store: %w", err)
	}
	return nil
}

// HasAPIKey reports whether a key is resolvable for the provider without
// returning it.
func HasAPIKey(provider string) bool {
	_, err := ResolveAPIKey(provider)
	return err == nil
}

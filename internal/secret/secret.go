// Package secret resolves the LLM API credential the conversation client
// needs. Lookup order is fixed: a structured secrets file first, then the
// environment. The credential value itself is never logged.
package secret

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// EnvAPIKey is the environment variable checked when the secrets file
	// yields nothing.
	EnvAPIKey = "LLM_API_KEY"

	// EnvStoreFile overrides the secrets file location.
	EnvStoreFile = "SECRETS_FILE"

	// DefaultStoreFile is the secrets file probed when no override is set.
	DefaultStoreFile = "secrets.yaml"
)

// ErrNotFound means neither the secrets file nor the environment holds a
// credential. The API binary treats this as fatal: no recommendations are
// possible without one.
var ErrNotFound = errors.New("llm api credential not found in secrets file or environment")

type storeFile struct {
	APIKey string `yaml:"llm_api_key"`
}

// Resolve returns the API credential from the secrets file when present,
// otherwise from LLM_API_KEY. A missing file falls through to the
// environment; an unreadable or malformed file is a hard configuration
// error.
func Resolve() (string, error) {
	path := strings.TrimSpace(os.Getenv(EnvStoreFile))
	if path == "" {
		path = DefaultStoreFile
	}

	key, err := fromStore(path)
	if err != nil {
		return "", err
	}
	if key != "" {
		log.Printf("[secret] llm credential resolved from %s", path)
		return key, nil
	}

	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		log.Printf("[secret] llm credential resolved from %s", EnvAPIKey)
		return key, nil
	}

	return "", ErrNotFound
}

func fromStore(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read secrets file %s: %w", path, err)
	}

	var s storeFile
	if err := cleanenv.ReadConfig(path, &s); err != nil {
		return "", fmt.Errorf("failed to parse secrets file %s: %w", path, err)
	}
	return strings.TrimSpace(s.APIKey), nil
}

package skit

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Env resolves key from the process environment, then from a .env file in
// the working directory, then by prompting through the host. A prompted
// value is exported into the process environment so repeated lookups stay
// quiet within the same run.
func (k *Kit) Env(ctx context.Context, key string) (string, error) {
	if value, ok := os.LookupEnv(key); ok {
		return value, nil
	}

	if values, err := godotenv.Read(); err == nil {
		if value, ok := values[key]; ok {
			return value, nil
		}
	}

	value, err := k.Input(ctx, fmt.Sprintf("Set %s:", key), &InputOptions{Secret: true})
	if err != nil {
		return "", err
	}

	if err := os.Setenv(key, value); err != nil {
		return "", fmt.Errorf("failed to set %s: %w", key, err)
	}
	return value, nil
}

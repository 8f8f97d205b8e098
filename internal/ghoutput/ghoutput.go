// Package ghoutput writes step outputs for GitHub Actions.
package ghoutput

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Write appends outputs to the GITHUB_OUTPUT file when it is set.
func Write(values map[string]string) error {
	return WriteTo(strings.TrimSpace(os.Getenv("GITHUB_OUTPUT")), values)
}

// WriteTo appends outputs to path. Multi-line values use the heredoc form
// with a random delimiter. An empty path is a no-op.
func WriteTo(path string, values map[string]string) error {
	if path == "" || len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values[key]
		if !strings.ContainsAny(value, "\r\n") {
			if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
				return err
			}
			continue
		}
		delim, err := delimiter(value)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delim, strings.TrimRight(value, "\r\n"), delim); err != nil {
			return err
		}
	}
	return nil
}

func delimiter(value string) (string, error) {
	var b [8]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			return "", fmt.Errorf("generate output delimiter: %w", err)
		}
		d := "ghadelim_" + hex.EncodeToString(b[:])
		if !strings.Contains(value, d) {
			return d, nil
		}
	}
}

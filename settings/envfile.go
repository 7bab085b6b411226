// Copyright (c) Microsoft. All rights reserved.

package settings

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

// ParseEnvFile reads KEY=VALUE lines. Blank lines, comment lines, lines
// without '=' and lines whose key is not a valid variable name are skipped.
// Values are trimmed, one pair of surrounding quotes is removed and the rest
// is kept literally; no variable expansion takes place. Keys are returned
// upper-cased.
func ParseEnvFile(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			continue
		}
		if k, v, ok := parseEnvLine(key, unquote(strings.TrimSpace(value))); ok {
			out[normalizeKey(k)] = v
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read env file: %w", af.ErrConfig, err)
	}
	return out, nil
}

// parseEnvLine lets godotenv validate the key and handle the export prefix.
// The value is passed single-quoted so godotenv keeps it verbatim.
func parseEnvLine(key, value string) (string, string, bool) {
	if strings.ContainsRune(key, ':') {
		return "", "", false
	}
	// A quote or trailing backslash cannot sit inside the single-quoted form;
	// the key is then checked with an empty value and the value used as read.
	quoted := value
	if strings.ContainsRune(value, '\'') || strings.HasSuffix(value, `\`) {
		quoted = ""
	}
	parsed, err := godotenv.Unmarshal(key + "='" + quoted + "'")
	if err != nil || len(parsed) != 1 {
		return "", "", false
	}
	for k, v := range parsed {
		if quoted != value {
			v = value
		}
		return k, v, true
	}
	return "", "", false
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

package vars

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Func is a built-in placeholder function.
type Func func(args []string) (string, error)

var funcCallPattern = regexp.MustCompile(`^(\w+)\((.*)\)$`)

func defaultFuncs() map[string]Func {
	return map[string]Func{
		"uuid":        func([]string) (string, error) { return uuid.NewString(), nil },
		"now":         func([]string) (string, error) { return time.Now().UTC().Format(time.RFC3339), nil },
		"timestamp":   func([]string) (string, error) { return fmt.Sprint(time.Now().Unix()), nil },
		"timestampMs": func([]string) (string, error) { return fmt.Sprint(time.Now().UnixMilli()), nil },
		"date":        funcDate,
		"base64":      funcBase64,
		"urlEncode":   funcURLEncode,
	}
}

func funcDate(args []string) (string, error) {
	layout := "2006-01-02"
	if len(args) > 0 {
		layout = args[0]
	}
	return time.Now().UTC().Format(layout), nil
}

func funcBase64(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("base64 takes one argument, got %d", len(args))
	}
	return base64.StdEncoding.EncodeToString([]byte(args[0])), nil
}

func funcURLEncode(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("urlEncode takes one argument, got %d", len(args))
	}
	return url.QueryEscape(args[0]), nil
}

// splitArgs splits a comma separated argument list, honouring single and
// double quotes.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var (
		args    []string
		current strings.Builder
		quote   byte
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote == 0 && (ch == '"' || ch == '\''):
			quote = ch
		case quote != 0 && ch == quote:
			quote = 0
		case quote == 0 && ch == ',':
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	return append(args, strings.TrimSpace(current.String()))
}

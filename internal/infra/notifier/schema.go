package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"notify-svc/internal/domain/entity"
)

// requiredEmailAttributes is reported verbatim when any required key is absent.
const requiredEmailAttributes = "Required attributes: server, port, toAddr, fromAddr, ssl, auth, starttls"

const emailSettingsSchema = `{
  "type": "object",
  "required": ["server", "port", "toAddr", "fromAddr", "ssl", "auth", "starttls"],
  "properties": {
    "server":   {"type": "string", "minLength": 1},
    "port": {
      "anyOf": [
        {"type": "integer", "minimum": 1, "maximum": 65535},
        {"type": "string", "pattern": "^[0-9]+$"}
      ]
    },
    "toAddr": {
      "anyOf": [
        {"type": "string", "minLength": 1},
        {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}}
      ]
    },
    "fromAddr": {"type": "string", "minLength": 1},
    "ssl":      {"type": "boolean"},
    "auth":     {"type": "boolean"},
    "starttls": {"type": "boolean"},
    "user":     {"type": "string"},
    "password": {"type": "string"}
  }
}`

var emailSchema = mustCompile(emailSettingsSchema)

func mustCompile(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("notifier: invalid embedded schema: %v", err))
	}
	return s
}

// EmailConfig is the validated form of an email settings blob.
type EmailConfig struct {
	Server   string
	Port     int
	ToAddrs  []string
	FromAddr string
	SSL      bool
	Auth     bool
	StartTLS bool
	User     string
	Password string
}

// ParseEmailConfig validates a settings blob and converts it.
// Missing required keys yield MissingAttribute, malformed values BadRequest.
func ParseEmailConfig(settings entity.Settings) (EmailConfig, error) {
	if settings == nil {
		settings = entity.Settings{}
	}

	res, err := emailSchema.Validate(gojsonschema.NewGoLoader(settings))
	if err != nil {
		return EmailConfig{}, entity.BadRequest("invalid email settings: %v", err)
	}
	if !res.Valid() {
		return EmailConfig{}, schemaError(res.Errors())
	}

	cfg := EmailConfig{
		Server:   settings["server"].(string),
		FromAddr: settings["fromAddr"].(string),
		SSL:      settings["ssl"].(bool),
		Auth:     settings["auth"].(bool),
		StartTLS: settings["starttls"].(bool),
	}
	cfg.User, _ = settings["user"].(string)
	cfg.Password, _ = settings["password"].(string)

	if cfg.Port, err = parsePort(settings["port"]); err != nil {
		return EmailConfig{}, err
	}
	cfg.ToAddrs = parseRecipients(settings["toAddr"])
	return cfg, nil
}

func schemaError(errs []gojsonschema.ResultError) error {
	details := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Type() == "required" {
			return entity.MissingAttribute(requiredEmailAttributes)
		}
		details = append(details, e.String())
	}
	return entity.BadRequest("invalid email settings: %s", strings.Join(details, "; "))
}

// parsePort accepts any JSON or YAML numeric form, or a numeric string.
func parsePort(v any) (int, error) {
	var port int
	switch p := v.(type) {
	case float64:
		port = int(p)
	case int:
		port = p
	case int64:
		port = int(p)
	case uint64:
		port = int(p)
	case string:
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, entity.BadRequest("invalid port %q", p)
		}
		port = n
	default:
		return 0, entity.BadRequest("invalid port %v", v)
	}
	if port < 1 || port > 65535 {
		return 0, entity.BadRequest("port out of range: %d", port)
	}
	return port, nil
}

func parseRecipients(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

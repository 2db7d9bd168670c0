package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notify-svc/internal/domain/entity"
)

func validSettings() entity.Settings {
	return entity.Settings{
		"server":   "smtp.example.com",
		"port":     float64(587),
		"toAddr":   []any{"ops@example.com", "dev@example.com"},
		"fromAddr": "notify@example.com",
		"ssl":      false,
		"auth":     true,
		"starttls": true,
		"user":     "notify",
		"password": "s3cret",
	}
}

func TestParseEmailConfig_Valid(t *testing.T) {
	cfg, err := ParseEmailConfig(validSettings())
	require.NoError(t, err)

	assert.Equal(t, EmailConfig{
		Server:   "smtp.example.com",
		Port:     587,
		ToAddrs:  []string{"ops@example.com", "dev@example.com"},
		FromAddr: "notify@example.com",
		Auth:     true,
		StartTLS: true,
		User:     "notify",
		Password: "s3cret",
	}, cfg)
}

func TestParseEmailConfig_LenientShapes(t *testing.T) {
	s := validSettings()
	s["port"] = "2525"
	s["toAddr"] = "solo@example.com"
	delete(s, "user")
	delete(s, "password")

	cfg, err := ParseEmailConfig(s)
	require.NoError(t, err)
	assert.Equal(t, 2525, cfg.Port)
	assert.Equal(t, []string{"solo@example.com"}, cfg.ToAddrs)
	assert.Empty(t, cfg.User)

	s["port"] = 25 // YAML bootstrap decodes integers as int
	cfg, err = ParseEmailConfig(s)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Port)
}

func TestParseEmailConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(entity.Settings) entity.Settings
		kind   entity.ErrorKind
	}{
		{"nil blob", func(entity.Settings) entity.Settings { return nil }, entity.KindMissingAttribute},
		{"empty blob", func(entity.Settings) entity.Settings { return entity.Settings{} }, entity.KindMissingAttribute},
		{"missing server", func(s entity.Settings) entity.Settings { delete(s, "server"); return s }, entity.KindMissingAttribute},
		{"missing starttls", func(s entity.Settings) entity.Settings { delete(s, "starttls"); return s }, entity.KindMissingAttribute},
		{"ssl not boolean", func(s entity.Settings) entity.Settings { s["ssl"] = "yes"; return s }, entity.KindBadRequest},
		{"port not numeric", func(s entity.Settings) entity.Settings { s["port"] = "smtp"; return s }, entity.KindBadRequest},
		{"port too large", func(s entity.Settings) entity.Settings { s["port"] = float64(70000); return s }, entity.KindBadRequest},
		{"port string zero", func(s entity.Settings) entity.Settings { s["port"] = "0"; return s }, entity.KindBadRequest},
		{"empty recipient list", func(s entity.Settings) entity.Settings { s["toAddr"] = []any{}; return s }, entity.KindBadRequest},
		{"user not string", func(s entity.Settings) entity.Settings { s["user"] = float64(1); return s }, entity.KindBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEmailConfig(tt.mutate(validSettings()))
			require.Error(t, err)
			assert.Equal(t, tt.kind, entity.KindOf(err))
		})
	}
}

func TestParseEmailConfig_MissingMessage(t *testing.T) {
	_, err := ParseEmailConfig(entity.Settings{"server": "x"})
	require.Error(t, err)
	assert.Equal(t, "Required attributes: server, port, toAddr, fromAddr, ssl, auth, starttls", entity.AsError(err).Msg)
}

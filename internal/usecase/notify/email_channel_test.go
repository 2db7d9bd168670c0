package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/infra/notifier"
	"notify-svc/internal/resilience/circuitbreaker"
)

func validEmailSettings() entity.Settings {
	return entity.Settings{
		"server":   "smtp.example.com",
		"port":     587,
		"toAddr":   "ops@example.com",
		"fromAddr": "noreply@example.com",
		"ssl":      false,
		"auth":     false,
		"starttls": false,
	}
}

func TestEmailChannelFactory(t *testing.T) {
	factory := NewEmailChannelFactory(EmailChannelOptions{
		Limiter:  notifier.NewRateLimiter(10, 1),
		Breakers: true,
	})

	ch, err := factory(validEmailSettings())
	require.NoError(t, err)
	assert.Equal(t, "email", ch.Name())

	_, err = factory(entity.Settings{})
	assert.Equal(t, entity.KindMissingAttribute, entity.KindOf(err))

	bad := validEmailSettings()
	bad["port"] = "not-a-port"
	_, err = factory(bad)
	assert.Equal(t, entity.KindBadRequest, entity.KindOf(err))
}

func TestBreakerSet_OnePerServer(t *testing.T) {
	b := &breakerSet{byAddr: map[string]*circuitbreaker.CircuitBreaker{}}
	a1 := b.get("smtp.example.com:587")
	a2 := b.get("smtp.example.com:587")
	other := b.get("smtp.other.com:25")

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, other)
}

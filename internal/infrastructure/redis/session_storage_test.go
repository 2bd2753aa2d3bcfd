package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgredis "github.com/jhoicas/bookshop-pos/internal/infrastructure/redis"
	"github.com/jhoicas/bookshop-pos/pkg/config"
)

// Requiere TEST_REDIS_URL (ej. redis://localhost:6379/15); si no está definido se omite.
func TestSessionStorage_Redis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL no definido")
	}
	client, err := pkgredis.NewClient(context.Background(), config.RedisConfig{URL: url, PoolSize: 2})
	require.NoError(t, err)
	defer client.Close()

	s := pkgredis.NewSessionStorage(client, "test-session:")
	require.NoError(t, s.Reset())

	got, err := s.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got, "clave inexistente devuelve nil sin error")

	require.NoError(t, s.Set("abc", []byte("payload"), time.Minute))
	got, err = s.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, s.Delete("abc"))
	got, err = s.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("short", []byte("x"), 50*time.Millisecond))
	time.Sleep(120 * time.Millisecond)
	got, err = s.Get("short")
	require.NoError(t, err)
	assert.Nil(t, got, "la sesión expira")
}

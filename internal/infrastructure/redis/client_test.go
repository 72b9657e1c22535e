package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	mini := miniredis.RunT(t)

	client, err := NewClient(context.Background(), mini.Addr())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	mini.CheckGet(t, "k", "v")
}

func TestNewClient_Unreachable(t *testing.T) {
	mini := miniredis.RunT(t)
	addr := mini.Addr()
	mini.Close()

	client, err := NewClient(context.Background(), addr)
	assert.Error(t, err)
	assert.Nil(t, client)
}

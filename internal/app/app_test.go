package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/honeynil/PlayerServiceTochka/internal/config"
	"github.com/honeynil/PlayerServiceTochka/internal/models"
	"github.com/honeynil/PlayerServiceTochka/pkg/optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input() models.PlayerInput {
	return models.PlayerInput{
		Name:       optional.Some("Bilbo"),
		Title:      optional.Some("Burglar"),
		Race:       optional.Some(models.RaceHobbit),
		Profession: optional.Some(models.ProfessionRogue),
		Experience: optional.Some(100),
		Birthday:   optional.Some(time.Date(2011, time.September, 22, 0, 0, 0, 0, time.UTC)),
	}
}

func TestNew_Memory(t *testing.T) {
	a, err := New(context.Background(), &config.Config{StorageDriver: config.StorageMemory})
	require.NoError(t, err)
	defer a.Close()

	player, err := a.Service.Create(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, int64(1), player.ID)
}

func TestNew_Redis(t *testing.T) {
	mini := miniredis.RunT(t)

	a, err := New(context.Background(), &config.Config{StorageDriver: config.StorageRedis, RedisAddr: mini.Addr()})
	require.NoError(t, err)
	defer a.Close()

	player, err := a.Service.Create(context.Background(), input())
	require.NoError(t, err)
	assert.True(t, mini.Exists("player:1"))
	assert.Equal(t, 1, player.Level)
}

func TestNew_UnknownDriver(t *testing.T) {
	a, err := New(context.Background(), &config.Config{StorageDriver: "cassandra"})
	assert.Nil(t, a)
	assert.ErrorContains(t, err, "unknown storage driver")
}

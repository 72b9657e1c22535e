package repository_test

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/honeynil/PlayerServiceTochka/internal/filter"
	"github.com/honeynil/PlayerServiceTochka/internal/models"
	repository "github.com/honeynil/PlayerServiceTochka/internal/repository/postgres"
	pkgerrors "github.com/honeynil/PlayerServiceTochka/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var columns = []string{"id", "name", "title", "race", "profession", "experience", "level", "until_next_level", "birthday", "banned"}

func birthday() time.Time {
	return time.Date(2010, time.March, 14, 0, 0, 0, 0, time.UTC)
}

func TestPostgresPlayerRepository_Find(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresPlayerRepository(db)
	ctx := context.Background()

	t.Run("NoFilter", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM players WHERE TRUE ORDER BY id LIMIT $1 OFFSET $2`)).
			WithArgs(3, 6).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(7, "Ninelle", "Keeper", "ELF", "DRUID", 100, 1, 200, birthday(), false))

		players, err := repo.Find(ctx, filter.All(), models.OrderID, 2, 3)
		assert.NoError(t, err)
		assert.Len(t, players, 1)
		assert.Equal(t, int64(7), players[0].ID)
		assert.Equal(t, models.RaceElf, players[0].Race)
		assert.Equal(t, models.ProfessionDruid, players[0].Profession)
		assert.Equal(t, 200, players[0].UntilNextLevel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FilteredAndOrdered", func(t *testing.T) {
		lo := 2
		pred := filter.And(filter.RaceIs(models.RaceOrc), filter.LevelBetween(&lo, nil))
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE (race = $1 AND level >= $2) ORDER BY name, id LIMIT $3 OFFSET $4`)).
			WithArgs("ORC", 2, 10, 0).
			WillReturnRows(sqlmock.NewRows(columns))

		players, err := repo.Find(ctx, pred, models.OrderName, 0, 10)
		assert.NoError(t, err)
		assert.NotNil(t, players)
		assert.Empty(t, players)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OffsetOverflow", func(t *testing.T) {
		players, err := repo.Find(ctx, filter.All(), models.OrderID, math.MaxInt/3+1, 3)
		assert.NoError(t, err)
		assert.NotNil(t, players)
		assert.Empty(t, players)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM players`)).
			WillReturnError(fmt.Errorf("connection reset"))

		players, err := repo.Find(ctx, filter.All(), models.OrderID, 0, 3)
		assert.Nil(t, players)
		assert.ErrorContains(t, err, "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresPlayerRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresPlayerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM players WHERE banned = $1`)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.Count(context.Background(), filter.BannedIs(true))
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPlayerRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresPlayerRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM players WHERE id = $1`)).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(5, "Torgrim", "Hammer", "DWARF", "WARRIOR", 300, 2, 300, birthday(), true))

		player, err := repo.GetByID(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, "Torgrim", player.Name)
		assert.True(t, player.Banned)
		assert.Equal(t, birthday(), player.Birthday)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM players WHERE id = $1`)).
			WithArgs(int64(999999)).
			WillReturnRows(sqlmock.NewRows(columns))

		player, err := repo.GetByID(ctx, 999999)
		assert.Nil(t, player)
		assert.ErrorIs(t, err, pkgerrors.ErrPlayerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresPlayerRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresPlayerRepository(db)
	ctx := context.Background()

	newPlayer := func() *models.Player {
		p := &models.Player{
			Name:       "Ashgar",
			Title:      "Night Blade",
			Race:       models.RaceOrc,
			Profession: models.ProfessionRogue,
			Birthday:   birthday(),
		}
		p.ApplyExperience(100)
		return p
	}

	t.Run("NilPlayer", func(t *testing.T) {
		err := repo.Save(ctx, nil)
		assert.ErrorIs(t, err, pkgerrors.ErrNilPlayer)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert", func(t *testing.T) {
		p := newPlayer()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO players (name, title, race, profession, experience, level, until_next_level, birthday, banned) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`)).
			WithArgs("Ashgar", "Night Blade", "ORC", "ROGUE", 100, 1, 200, birthday(), false).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		err := repo.Save(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), p.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update", func(t *testing.T) {
		p := newPlayer()
		p.ID = 42
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE players SET name = $1`)).
			WithArgs("Ashgar", "Night Blade", "ORC", "ROGUE", 100, 1, 200, birthday(), false, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Save(ctx, p))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateMissingRow", func(t *testing.T) {
		p := newPlayer()
		p.ID = 43
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE players`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Save(ctx, p)
		assert.ErrorIs(t, err, pkgerrors.ErrPlayerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO players`)).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Save(ctx, newPlayer())
		assert.ErrorContains(t, err, "failed to insert player")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresPlayerRepository_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresPlayerRepository(db)
	ctx := context.Background()

	t.Run("Deleted", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM players WHERE id = $1`)).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteByID(ctx, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM players WHERE id = $1`)).
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteByID(ctx, 4), pkgerrors.ErrPlayerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

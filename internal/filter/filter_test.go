package filter

import (
	"testing"
	"time"

	"github.com/honeynil/PlayerServiceTochka/internal/models"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func date(year int) time.Time {
	return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func fixture() []models.Player {
	players := []models.Player{
		{ID: 1, Name: "Ninelle", Title: "Keeper of Ash", Race: models.RaceElf, Profession: models.ProfessionDruid, Birthday: date(2001)},
		{ID: 2, Name: "Torgrim", Title: "Hammer of Deep", Race: models.RaceDwarf, Profession: models.ProfessionWarrior, Birthday: date(2005), Banned: true},
		{ID: 3, Name: "Ashgar", Title: "Night Blade", Race: models.RaceOrc, Profession: models.ProfessionRogue, Birthday: date(2010)},
		{ID: 4, Name: "ninja", Title: "keeper", Race: models.RaceElf, Profession: models.ProfessionRogue, Birthday: date(2015)},
	}
	exp := []int{0, 100, 2500, 120000}
	for i := range players {
		players[i].ApplyExperience(exp[i])
	}
	return players
}

func matchIDs(pred Predicate, players []models.Player) []int64 {
	ids := []int64{}
	for i := range players {
		if pred.Match(&players[i]) {
			ids = append(ids, players[i].ID)
		}
	}
	return ids
}

func TestBuild_Empty(t *testing.T) {
	pred := Build(Params{})
	assert.Equal(t, All(), pred)
	assert.Equal(t, []int64{1, 2, 3, 4}, matchIDs(pred, fixture()))

	args := &Args{}
	assert.Equal(t, "TRUE", pred.SQL(args))
	assert.Empty(t, args.Values())
}

func TestNameContains_CaseSensitive(t *testing.T) {
	assert.Equal(t, []int64{1}, matchIDs(NameContains("Nin"), fixture()))
	assert.Equal(t, []int64{4}, matchIDs(NameContains("nin"), fixture()))
}

func TestTitleContains(t *testing.T) {
	assert.Equal(t, []int64{1}, matchIDs(TitleContains("Keeper"), fixture()))
	assert.Equal(t, []int64{1, 2, 3, 4}, matchIDs(TitleContains("e"), fixture()))
}

func TestEquality(t *testing.T) {
	players := fixture()
	assert.Equal(t, []int64{1, 4}, matchIDs(RaceIs(models.RaceElf), players))
	assert.Equal(t, []int64{3, 4}, matchIDs(ProfessionIs(models.ProfessionRogue), players))
	assert.Equal(t, []int64{2}, matchIDs(BannedIs(true), players))
	assert.Equal(t, []int64{1, 3, 4}, matchIDs(BannedIs(false), players))
}

func TestRanges(t *testing.T) {
	players := fixture()

	t.Run("min only", func(t *testing.T) {
		assert.Equal(t, []int64{2, 3, 4}, matchIDs(ExperienceBetween(ptr(100), nil), players))
		assert.Equal(t, []int64{3, 4}, matchIDs(LevelBetween(ptr(2), nil), players))
	})

	t.Run("max only", func(t *testing.T) {
		assert.Equal(t, []int64{1, 2}, matchIDs(ExperienceBetween(nil, ptr(100)), players))
		assert.Equal(t, []int64{1, 2}, matchIDs(LevelBetween(nil, ptr(1)), players))
	})

	t.Run("inclusive both", func(t *testing.T) {
		assert.Equal(t, []int64{2, 3}, matchIDs(ExperienceBetween(ptr(100), ptr(2500)), players))
		assert.Equal(t, []int64{2, 3}, matchIDs(BirthdayBetween(ptr(date(2005)), ptr(date(2010))), players))
	})

	t.Run("no bounds", func(t *testing.T) {
		assert.Equal(t, All(), ExperienceBetween(nil, nil))
		assert.Equal(t, All(), LevelBetween(nil, nil))
		assert.Equal(t, All(), BirthdayBetween(nil, nil))
	})
}

func TestRange_CapturesBounds(t *testing.T) {
	lo := 100
	pred := ExperienceBetween(&lo, nil)
	lo = 0
	assert.Equal(t, []int64{2, 3, 4}, matchIDs(pred, fixture()))
}

func TestAnd_Commutative(t *testing.T) {
	players := fixture()
	a := And(RaceIs(models.RaceElf), BannedIs(false))
	b := And(BannedIs(false), RaceIs(models.RaceElf))
	assert.Equal(t, matchIDs(a, players), matchIDs(b, players))

	nested := And(And(RaceIs(models.RaceElf), All()), And(BannedIs(false)))
	assert.Equal(t, matchIDs(a, players), matchIDs(nested, players))
	assert.Len(t, nested, 2)
}

func TestAnd_Single(t *testing.T) {
	pred := NameContains("x")
	assert.Equal(t, "strpos(name, $1) > 0", And(All(), pred).SQL(&Args{}))
}

func TestBuild_SQL(t *testing.T) {
	after := date(2002)
	pred := Build(Params{
		Name:     ptr("ash"),
		Race:     ptr(models.RaceOrc),
		After:    &after,
		Banned:   ptr(false),
		MinLevel: ptr(1),
		MaxLevel: ptr(5),
	})

	args := &Args{}
	sql := pred.SQL(args)
	assert.Equal(t, "(strpos(name, $1) > 0 AND race = $2 AND birthday >= $3 AND banned = $4 AND level BETWEEN $5 AND $6)", sql)
	assert.Equal(t, []any{"ash", "ORC", after, false, 1, 5}, args.Values())
}

func TestBuild_MatchesConjunction(t *testing.T) {
	pred := Build(Params{
		Profession:    ptr(models.ProfessionRogue),
		MinExperience: ptr(1000),
		Before:        ptr(date(2012)),
	})
	assert.Equal(t, []int64{3}, matchIDs(pred, fixture()))
}

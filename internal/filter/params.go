package filter

import (
	"time"

	"github.com/honeynil/PlayerServiceTochka/internal/models"
)

// Params holds the optional filter criteria. A nil field imposes no
// constraint.
type Params struct {
	Name          *string
	Title         *string
	Race          *models.Race
	Profession    *models.Profession
	After         *time.Time
	Before        *time.Time
	Banned        *bool
	MinExperience *int
	MaxExperience *int
	MinLevel      *int
	MaxLevel      *int
}

// Build composes the conjunction of every supplied criterion.
func Build(p Params) Predicate {
	var preds []Predicate
	if p.Name != nil {
		preds = append(preds, NameContains(*p.Name))
	}
	if p.Title != nil {
		preds = append(preds, TitleContains(*p.Title))
	}
	if p.Race != nil {
		preds = append(preds, RaceIs(*p.Race))
	}
	if p.Profession != nil {
		preds = append(preds, ProfessionIs(*p.Profession))
	}
	preds = append(preds, BirthdayBetween(p.After, p.Before))
	if p.Banned != nil {
		preds = append(preds, BannedIs(*p.Banned))
	}
	preds = append(preds,
		ExperienceBetween(p.MinExperience, p.MaxExperience),
		LevelBetween(p.MinLevel, p.MaxLevel),
	)
	return And(preds...)
}

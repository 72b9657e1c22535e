package handler

import (
	"time"

	"github.com/honeynil/PlayerServiceTochka/internal/models"
	"github.com/honeynil/PlayerServiceTochka/pkg/optional"
)

// playerResponse is the wire form of a player. Birthday travels as epoch
// milliseconds.
type playerResponse struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Title          string            `json:"title"`
	Race           models.Race       `json:"race"`
	Profession     models.Profession `json:"profession"`
	Experience     int               `json:"experience"`
	Level          int               `json:"level"`
	UntilNextLevel int               `json:"untilNextLevel"`
	Birthday       int64             `json:"birthday"`
	Banned         bool              `json:"banned"`
}

func toResponse(p *models.Player) playerResponse {
	return playerResponse{
		ID:             p.ID,
		Name:           p.Name,
		Title:          p.Title,
		Race:           p.Race,
		Profession:     p.Profession,
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
		Birthday:       p.Birthday.UnixMilli(),
		Banned:         p.Banned,
	}
}

func toResponses(players []models.Player) []playerResponse {
	out := make([]playerResponse, 0, len(players))
	for i := range players {
		out = append(out, toResponse(&players[i]))
	}
	return out
}

type playerRequest struct {
	Name       optional.Optional[string] `json:"name"`
	Title      optional.Optional[string] `json:"title"`
	Race       optional.Optional[string] `json:"race"`
	Profession optional.Optional[string] `json:"profession"`
	Experience optional.Optional[int]    `json:"experience"`
	Birthday   optional.Optional[int64]  `json:"birthday"`
	Banned     optional.Optional[bool]   `json:"banned"`
}

func (r playerRequest) toInput() (models.PlayerInput, error) {
	in := models.PlayerInput{
		Name:       r.Name,
		Title:      r.Title,
		Experience: r.Experience,
		Banned:     r.Banned,
	}
	if v, ok := r.Race.Get(); ok {
		race, err := models.ParseRace(v)
		if err != nil {
			return models.PlayerInput{}, err
		}
		in.Race = optional.Some(race)
	}
	if v, ok := r.Profession.Get(); ok {
		profession, err := models.ParseProfession(v)
		if err != nil {
			return models.PlayerInput{}, err
		}
		in.Profession = optional.Some(profession)
	}
	if v, ok := r.Birthday.Get(); ok {
		in.Birthday = optional.Some(time.UnixMilli(v).UTC())
	}
	return in, nil
}

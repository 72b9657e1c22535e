package models

import (
	"math"
	"time"

	"github.com/honeynil/PlayerServiceTochka/pkg/optional"
)

const (
	MaxNameLength  = 12
	MaxTitleLength = 30
	MaxExperience  = 10_000_000
	MinBirthYear   = 2000
	MaxBirthYear   = 3000
)

type Player struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Title          string     `json:"title"`
	Race           Race       `json:"race"`
	Profession     Profession `json:"profession"`
	Experience     int        `json:"experience"`
	Level          int        `json:"level"`
	UntilNextLevel int        `json:"untilNextLevel"`
	Birthday       time.Time  `json:"birthday"`
	Banned         bool       `json:"banned"`
}

// PlayerInput carries the client-settable fields of a player. Absent fields
// are left untouched on update and rejected on create (except Banned).
type PlayerInput struct {
	Name       optional.Optional[string]     `json:"name"`
	Title      optional.Optional[string]     `json:"title"`
	Race       optional.Optional[Race]       `json:"race"`
	Profession optional.Optional[Profession] `json:"profession"`
	Experience optional.Optional[int]        `json:"experience"`
	Birthday   optional.Optional[time.Time]  `json:"birthday"`
	Banned     optional.Optional[bool]       `json:"banned"`
}

// LevelFor derives the level reached with the given experience.
func LevelFor(experience int) int {
	return int((math.Sqrt(float64(2500+200*int64(experience))) - 50) / 100)
}

// UntilNextLevel is the experience still missing to reach level+1.
func UntilNextLevel(level, experience int) int {
	return 50*(level+1)*(level+2) - experience
}

// ApplyExperience sets experience and recomputes the derived fields.
func (p *Player) ApplyExperience(experience int) {
	p.Experience = experience
	p.Level = LevelFor(experience)
	p.UntilNextLevel = UntilNextLevel(p.Level, experience)
}

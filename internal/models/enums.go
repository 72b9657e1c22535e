package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	pkgerrors "github.com/honeynil/PlayerServiceTochka/pkg/errors"
)

type Race string

const (
	RaceHuman  Race = "HUMAN"
	RaceDwarf  Race = "DWARF"
	RaceElf    Race = "ELF"
	RaceGiant  Race = "GIANT"
	RaceOrc    Race = "ORC"
	RaceTroll  Race = "TROLL"
	RaceHobbit Race = "HOBBIT"
)

var Races = []Race{RaceHuman, RaceDwarf, RaceElf, RaceGiant, RaceOrc, RaceTroll, RaceHobbit}

func (r Race) Valid() bool {
	return slices.Contains(Races, r)
}

func ParseRace(s string) (Race, error) {
	r := Race(strings.ToUpper(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown race %q", pkgerrors.ErrInvalidInput, s)
	}
	return r, nil
}

type Profession string

const (
	ProfessionWarrior  Profession = "WARRIOR"
	ProfessionRogue    Profession = "ROGUE"
	ProfessionSorcerer Profession = "SORCERER"
	ProfessionCleric   Profession = "CLERIC"
	ProfessionPaladin  Profession = "PALADIN"
	ProfessionNazgul   Profession = "NAZGUL"
	ProfessionWarlock  Profession = "WARLOCK"
	ProfessionDruid    Profession = "DRUID"
)

var Professions = []Profession{
	ProfessionWarrior, ProfessionRogue, ProfessionSorcerer, ProfessionCleric,
	ProfessionPaladin, ProfessionNazgul, ProfessionWarlock, ProfessionDruid,
}

func (p Profession) Valid() bool {
	return slices.Contains(Professions, p)
}

func ParseProfession(s string) (Profession, error) {
	p := Profession(strings.ToUpper(s))
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown profession %q", pkgerrors.ErrInvalidInput, s)
	}
	return p, nil
}

// Order is a sortable player field. Sorting is always ascending.
type Order string

const (
	OrderID         Order = "ID"
	OrderName       Order = "NAME"
	OrderTitle      Order = "TITLE"
	OrderExperience Order = "EXPERIENCE"
	OrderLevel      Order = "LEVEL"
	OrderBirthday   Order = "BIRTHDAY"
)

var orderColumns = map[Order]string{
	OrderID:         "id",
	OrderName:       "name",
	OrderTitle:      "title",
	OrderExperience: "experience",
	OrderLevel:      "level",
	OrderBirthday:   "birthday",
}

func ParseOrder(s string) (Order, error) {
	if s == "" {
		return OrderID, nil
	}
	o := Order(strings.ToUpper(s))
	if _, ok := orderColumns[o]; !ok {
		return "", fmt.Errorf("%w: unknown order %q", pkgerrors.ErrInvalidInput, s)
	}
	return o, nil
}

// Column returns the storage column for the order. Unknown orders fall back
// to id.
func (o Order) Column() string {
	if c, ok := orderColumns[o]; ok {
		return c
	}
	return "id"
}

// Compare orders two players ascending by the order field, breaking ties by id.
func (o Order) Compare(a, b *Player) int {
	var c int
	switch o {
	case OrderName:
		c = strings.Compare(a.Name, b.Name)
	case OrderTitle:
		c = strings.Compare(a.Title, b.Title)
	case OrderExperience:
		c = cmp.Compare(a.Experience, b.Experience)
	case OrderLevel:
		c = cmp.Compare(a.Level, b.Level)
	case OrderBirthday:
		c = a.Birthday.Compare(b.Birthday)
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

package service

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/honeynil/PlayerServiceTochka/internal/models"
	pkgerrors "github.com/honeynil/PlayerServiceTochka/pkg/errors"
)

var (
	validate = validator.New()

	nameRule       = fmt.Sprintf("required,max=%d", models.MaxNameLength)
	titleRule      = fmt.Sprintf("required,max=%d", models.MaxTitleLength)
	experienceRule = fmt.Sprintf("min=0,max=%d", models.MaxExperience)
	birthYearRule  = fmt.Sprintf("min=%d,max=%d", models.MinBirthYear, models.MaxBirthYear)
	raceRule       = "required,oneof=" + joinEnum(models.Races)
	professionRule = "required,oneof=" + joinEnum(models.Professions)
)

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, " ")
}

// ParseID converts the external id representation into a positive numeric id.
func ParseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", pkgerrors.ErrInvalidID, id)
	}
	return n, nil
}

func checkField(field string, value any, rule string) error {
	err := validate.Var(value, rule)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s fails %q (got %v)", pkgerrors.ErrInvalidInput, field, verrs[0].Tag(), value)
	}
	return fmt.Errorf("%w: %s: %v", pkgerrors.ErrInvalidInput, field, err)
}

func validateName(name string) error {
	return checkField("name", name, nameRule)
}

func validateTitle(title string) error {
	return checkField("title", title, titleRule)
}

func validateRace(race models.Race) error {
	return checkField("race", string(race), raceRule)
}

func validateProfession(profession models.Profession) error {
	return checkField("profession", string(profession), professionRule)
}

func validateExperience(experience int) error {
	return checkField("experience", experience, experienceRule)
}

// validateBirthday checks the calendar year in UTC.
func validateBirthday(birthday time.Time) error {
	return checkField("birthday year", birthday.UTC().Year(), birthYearRule)
}

// validateInput checks every present field in a fixed order and reports the
// first violation. With requireAll set, absent required fields are violations
// too.
func validateInput(in models.PlayerInput, requireAll bool) error {
	missing := func(field string) error {
		return fmt.Errorf("%w: %s is required", pkgerrors.ErrInvalidInput, field)
	}

	if v, ok := in.Name.Get(); ok {
		if err := validateName(v); err != nil {
			return err
		}
	} else if requireAll {
		return missing("name")
	}
	if v, ok := in.Title.Get(); ok {
		if err := validateTitle(v); err != nil {
			return err
		}
	} else if requireAll {
		return missing("title")
	}
	if v, ok := in.Race.Get(); ok {
		if err := validateRace(v); err != nil {
			return err
		}
	} else if requireAll {
		return missing("race")
	}
	if v, ok := in.Profession.Get(); ok {
		if err := validateProfession(v); err != nil {
			return err
		}
	} else if requireAll {
		return missing("profession")
	}
	if v, ok := in.Experience.Get(); ok {
		if err := validateExperience(v); err != nil {
			return err
		}
	} else if requireAll {
		return missing("experience")
	}
	if v, ok := in.Birthday.Get(); ok {
		if err := validateBirthday(v); err != nil {
			return err
		}
	} else if requireAll {
		return missing("birthday")
	}
	return nil
}

// Package filter composes player predicates out of optional query parameters.
//
// A Predicate can be evaluated in process (Match) or rendered as a SQL
// boolean expression (SQL). Conjunction order never changes the matched set.
package filter

import (
	"cmp"
	"strconv"
	"strings"
	"time"

	"github.com/honeynil/PlayerServiceTochka/internal/models"
)

type Predicate interface {
	Match(p *models.Player) bool
	SQL(args *Args) string
}

// Args collects positional SQL arguments.
type Args struct {
	values []any
}

// Add appends v and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

func (a *Args) Values() []any {
	return a.values
}

type matchAll struct{}

func (matchAll) Match(*models.Player) bool { return true }
func (matchAll) SQL(*Args) string          { return "TRUE" }

// All matches every player.
func All() Predicate {
	return matchAll{}
}

type conjunction []Predicate

func (c conjunction) Match(p *models.Player) bool {
	for _, pred := range c {
		if !pred.Match(p) {
			return false
		}
	}
	return true
}

func (c conjunction) SQL(args *Args) string {
	parts := make([]string, 0, len(c))
	for _, pred := range c {
		parts = append(parts, pred.SQL(args))
	}
	return "(" + strings.Join(parts, " AND ") + ")"
}

// And returns the conjunction of preds. Nested conjunctions are flattened and
// match-all members dropped; zero members yield All.
func And(preds ...Predicate) Predicate {
	var out conjunction
	for _, pred := range preds {
		switch p := pred.(type) {
		case nil, matchAll:
		case conjunction:
			out = append(out, p...)
		default:
			out = append(out, p)
		}
	}
	switch len(out) {
	case 0:
		return All()
	case 1:
		return out[0]
	}
	return out
}

// field is a single comparison over one column. match carries the in-process
// form of the same test.
type field struct {
	render func(args *Args) string
	match  func(p *models.Player) bool
}

func (f field) Match(p *models.Player) bool { return f.match(p) }
func (f field) SQL(args *Args) string       { return f.render(args) }

func contains(column, value string, get func(*models.Player) string) Predicate {
	return field{
		render: func(args *Args) string {
			return "strpos(" + column + ", " + args.Add(value) + ") > 0"
		},
		match: func(p *models.Player) bool {
			return strings.Contains(get(p), value)
		},
	}
}

func equals[T comparable](column string, value T, get func(*models.Player) T) Predicate {
	return field{
		render: func(args *Args) string {
			return column + " = " + args.Add(value)
		},
		match: func(p *models.Player) bool {
			return get(p) == value
		},
	}
}

// between is the inclusive tri-state range: either bound may be absent, both
// absent means no constraint.
func between[T any](column string, lo, hi *T, get func(*models.Player) T, compare func(a, b T) int) Predicate {
	switch {
	case lo == nil && hi == nil:
		return All()
	case hi == nil:
		from := *lo
		return field{
			render: func(args *Args) string { return column + " >= " + args.Add(from) },
			match:  func(p *models.Player) bool { return compare(get(p), from) >= 0 },
		}
	case lo == nil:
		to := *hi
		return field{
			render: func(args *Args) string { return column + " <= " + args.Add(to) },
			match:  func(p *models.Player) bool { return compare(get(p), to) <= 0 },
		}
	}
	from, to := *lo, *hi
	return field{
		render: func(args *Args) string {
			return column + " BETWEEN " + args.Add(from) + " AND " + args.Add(to)
		},
		match: func(p *models.Player) bool {
			v := get(p)
			return compare(v, from) >= 0 && compare(v, to) <= 0
		},
	}
}

func NameContains(s string) Predicate {
	return contains("name", s, func(p *models.Player) string { return p.Name })
}

func TitleContains(s string) Predicate {
	return contains("title", s, func(p *models.Player) string { return p.Title })
}

func RaceIs(r models.Race) Predicate {
	return equals("race", string(r), func(p *models.Player) string { return string(p.Race) })
}

func ProfessionIs(pr models.Profession) Predicate {
	return equals("profession", string(pr), func(p *models.Player) string { return string(p.Profession) })
}

func BannedIs(banned bool) Predicate {
	return equals("banned", banned, func(p *models.Player) bool { return p.Banned })
}

func ExperienceBetween(lo, hi *int) Predicate {
	return between("experience", lo, hi, func(p *models.Player) int { return p.Experience }, cmp.Compare[int])
}

func LevelBetween(lo, hi *int) Predicate {
	return between("level", lo, hi, func(p *models.Player) int { return p.Level }, cmp.Compare[int])
}

func BirthdayBetween(after, before *time.Time) Predicate {
	return between("birthday", after, before, func(p *models.Player) time.Time { return p.Birthday }, time.Time.Compare)
}

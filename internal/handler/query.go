package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/honeynil/PlayerServiceTochka/internal/filter"
	"github.com/honeynil/PlayerServiceTochka/internal/models"
	pkgerrors "github.com/honeynil/PlayerServiceTochka/pkg/errors"
)

const (
	defaultPageNumber = 0
	defaultPageSize   = 3
)

type listQuery struct {
	params     filter.Params
	order      models.Order
	pageNumber int
	pageSize   int
}

// parseFilter reads the filter criteria. An absent or empty parameter
// imposes no constraint.
func parseFilter(q url.Values) (filter.Params, error) {
	var p filter.Params
	var err error

	if v := q.Get("name"); v != "" {
		p.Name = &v
	}
	if v := q.Get("title"); v != "" {
		p.Title = &v
	}
	if v := q.Get("race"); v != "" {
		race, err := models.ParseRace(v)
		if err != nil {
			return p, err
		}
		p.Race = &race
	}
	if v := q.Get("profession"); v != "" {
		profession, err := models.ParseProfession(v)
		if err != nil {
			return p, err
		}
		p.Profession = &profession
	}
	if p.After, err = queryMillis(q, "after"); err != nil {
		return p, err
	}
	if p.Before, err = queryMillis(q, "before"); err != nil {
		return p, err
	}
	if v := q.Get("banned"); v != "" {
		banned, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("%w: banned must be a boolean", pkgerrors.ErrInvalidInput)
		}
		p.Banned = &banned
	}
	if p.MinExperience, err = queryInt(q, "minExperience"); err != nil {
		return p, err
	}
	if p.MaxExperience, err = queryInt(q, "maxExperience"); err != nil {
		return p, err
	}
	if p.MinLevel, err = queryInt(q, "minLevel"); err != nil {
		return p, err
	}
	if p.MaxLevel, err = queryInt(q, "maxLevel"); err != nil {
		return p, err
	}
	return p, nil
}

func parseListQuery(q url.Values) (listQuery, error) {
	params, err := parseFilter(q)
	if err != nil {
		return listQuery{}, err
	}
	order, err := models.ParseOrder(q.Get("order"))
	if err != nil {
		return listQuery{}, err
	}

	lq := listQuery{
		params:     params,
		order:      order,
		pageNumber: defaultPageNumber,
		pageSize:   defaultPageSize,
	}
	if n, err := queryInt(q, "pageNumber"); err != nil {
		return listQuery{}, err
	} else if n != nil {
		lq.pageNumber = *n
	}
	if n, err := queryInt(q, "pageSize"); err != nil {
		return listQuery{}, err
	} else if n != nil {
		lq.pageSize = *n
	}
	return lq, nil
}

func queryInt(q url.Values, key string) (*int, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", pkgerrors.ErrInvalidInput, key)
	}
	return &n, nil
}

func queryMillis(q url.Values, key string) (*time.Time, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be epoch milliseconds", pkgerrors.ErrInvalidInput, key)
	}
	t := time.UnixMilli(ms).UTC()
	return &t, nil
}

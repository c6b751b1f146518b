package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/types"
)

const (
	DefaultLimit = 200
	MaxLimit     = 500
)

// ParseFilterFromQuery reads search, sort[field], filter[field], limit, page, offset and withPagination.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:           make(map[string]string),
		Filter:         make(map[string]interface{}),
		Limit:          DefaultLimit,
		Page:           1,
		WithPagination: values.Get("withPagination") != "false",
	}

	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		filterReq.Limit = min(l, MaxLimit)
	}
	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		filterReq.Page = p
	}
	if o, err := strconv.Atoi(values.Get("offset")); err == nil && o >= 0 {
		filterReq.Offset = o
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		switch {
		case key == "search":
			filterReq.Search = vals[0]
		case strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]"):
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[key[5:len(key)-1]] = direction
			}
		case strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]"):
			field := key[7 : len(key)-1]
			if existing, ok := filterReq.Filter[field]; ok {
				filterReq.Filter[field] = fmt.Sprintf("%v,%s", existing, vals[0])
			} else {
				filterReq.Filter[field] = vals[0]
			}
		}
	}
	return filterReq
}

// ParseUUIDParam reads a path parameter as a UUID, answering 400 when malformed.
func ParseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

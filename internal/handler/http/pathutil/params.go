package pathutil

import (
	"net/http"
	"strconv"

	"notify-svc/internal/domain/entity"
)

// HandlerType extracts the {type} path value. ok is false for types that are
// not part of the reference data.
func HandlerType(r *http.Request) (t entity.HandlerType, ok bool) {
	t = entity.HandlerType(r.PathValue("type"))
	return t, t.IsValid()
}

// QueryInt64 parses an optional integer query parameter. An absent or empty
// parameter yields nil.
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, entity.BadRequest("%s must be an integer", name)
	}
	return &v, nil
}

// TimeRange reads the fromTime and toTime query parameters.
func TimeRange(r *http.Request) (entity.TimeRange, error) {
	from, err := QueryInt64(r, "fromTime")
	if err != nil {
		return entity.TimeRange{}, err
	}
	to, err := QueryInt64(r, "toTime")
	if err != nil {
		return entity.TimeRange{}, err
	}
	return entity.TimeRange{From: from, To: to}, nil
}

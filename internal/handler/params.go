package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// FlexInt decodes from a JSON number or a numeric string. Browser clients
// send category IDs taken from object keys, which are strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: reflect.TypeOf(*f)}
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// bind decodes the request body into req and validates it. Syntax errors
// are bad requests; a well-formed body with a wrong-typed field is invalid
// input naming that field.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		var ute *json.UnmarshalTypeError
		if errors.As(err, &he) && errors.As(he.Internal, &ute) && ute.Field != "" {
			return domain.InvalidInput("decode request", "invalid field type", map[string]string{
				ute.Field: "invalid type",
			})
		}
		return echo.ErrBadRequest
	}
	return c.Validate(req)
}

// pageParam reads ?page, falling back to the first page when it is missing
// or not an integer
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return 1
	}
	return page
}

// idParam reads an integer path parameter. Anything else does not name a
// resource, so it is reported as not found.
func idParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

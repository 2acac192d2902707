package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"demo/minimart/internal/model"
)

// VariablesParam carries a JSON object of GraphQL variables, as in
// GraphQL-over-HTTP GET requests.
const VariablesParam = "variables"

var reUserID = regexp.MustCompile(`^-?[0-9]{1,19}$`)

var ErrMissingID = errors.New("id: required")

type multiErr []error

func (m multiErr) Error() string {
	var b strings.Builder
	for i, e := range m {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

func (m multiErr) OrNil() error {
	if len(m) == 0 {
		return nil
	}
	return m
}

// UserID parses a user identifier taken from a path or query parameter.
func UserID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrMissingID
	}
	if !reUserID.MatchString(raw) {
		return 0, fmt.Errorf("id: must be an integer, got %q", raw)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("id: out of range")
	}
	return id, nil
}

// Variables builds the variables map from query parameters. The JSON object
// in the "variables" parameter is the base; every other parameter is added
// as a string, or as a list of strings when repeated. Numbers keep their
// literal text so large integers reach the upstream unchanged.
func Variables(q url.Values) (model.Variables, error) {
	var errs multiErr
	vars := model.Variables{}

	if raw := q.Get(VariablesParam); raw != "" {
		decoded, err := decodeObject(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("variables: must be a JSON object"))
		} else if decoded != nil {
			vars = decoded
		}
	}
	if len(q[VariablesParam]) > 1 {
		errs = append(errs, fmt.Errorf("variables: given more than once"))
	}

	for key, values := range q {
		if key == VariablesParam || len(values) == 0 {
			continue
		}
		if len(values) == 1 {
			vars[key] = values[0]
			continue
		}
		list := make([]any, 0, len(values))
		for _, v := range values {
			list = append(list, v)
		}
		vars[key] = list
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return vars, nil
}

func decodeObject(raw string) (model.Variables, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var vars model.Variables
	if err := dec.Decode(&vars); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after object")
	}
	return vars, nil
}

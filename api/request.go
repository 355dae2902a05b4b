package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

const maxJSONBodyBytes = 1 << 20

// decodeJSON reads a single JSON object from the body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewBadRequestError("failed to read request body")
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return errs.NewInvalidJSONError(errors.New("empty body"))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

func parseID(raw, field string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(field, "ID is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(field, "must be a UUID")
	}
	return id, nil
}

// field records whether a JSON key was present and whether it was null, so PATCH bodies
// only touch the columns they name.
type field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (f *field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// applyString writes a present string field onto an optional column. Empty strings and
// null both clear it.
func applyString(dst **string, f field[string]) {
	if !f.Set {
		return
	}
	if f.Null {
		*dst = nil
		return
	}
	*dst = models.StringPtr(strings.TrimSpace(f.Value))
}

// truthy accepts booleans, numbers and strings. Strings that look like "false", "0", "off" or
// "no" are false; any other non-empty string is true.
type truthy bool

func (t *truthy) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		*t = false
	case bool:
		*t = truthy(x)
	case float64:
		*t = x != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		if parsed, err := strconv.ParseBool(s); err == nil {
			*t = truthy(parsed)
		} else {
			*t = s != "" && s != "off" && s != "no"
		}
	default:
		*t = true
	}
	return nil
}

// galleryInput is either an array of URLs, encoded for storage, or a string stored as is.
type galleryInput struct {
	encoded *string
}

func (g *galleryInput) UnmarshalJSON(b []byte) error {
	var urls []string
	if err := json.Unmarshal(b, &urls); err == nil {
		g.encoded = models.EncodeGallery(urls)
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err == nil {
		g.encoded = models.StringPtr(raw)
		return nil
	}
	return fmt.Errorf("gallery must be an array of strings or a string")
}

// tagsInput is the comma-delimited tags string; an array is joined.
type tagsInput string

func (t *tagsInput) UnmarshalJSON(b []byte) error {
	var tags []string
	if err := json.Unmarshal(b, &tags); err == nil {
		*t = tagsInput(strings.Join(tags, ","))
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings")
	}
	*t = tagsInput(raw)
	return nil
}

// numericString keeps the percentage as text but also accepts a JSON number.
type numericString string

func (n *numericString) UnmarshalJSON(b []byte) error {
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*n = numericString(num.String())
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("percentage must be a number or a string")
	}
	*n = numericString(raw)
	return nil
}

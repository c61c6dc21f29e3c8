package article

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"articles-api/internal/domain/entity"
	artUC "articles-api/internal/usecase/article"
)

// decodeObject reads a JSON object keeping only whitelisted keys.
// Anything else in the body, id and timestamps included, is ignored.
func decodeObject(r io.Reader, allowed ...string) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(r)
	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, bodyError(err)
	}
	if raw == nil {
		return nil, notObject()
	}
	// The object must be the whole body.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, bodyError(err)
	}

	out := make(map[string]json.RawMessage, len(allowed))
	for _, k := range allowed {
		if v, ok := raw[k]; ok && !isNull(v) {
			out[k] = v
		}
	}
	return out, nil
}

func notObject() entity.ValidationErrors {
	return entity.ValidationErrors{{Field: "body", Message: "must be a JSON object"}}
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return entity.ValidationErrors{{Field: "body", Message: "is too large"}}
	}
	return notObject()
}

var inputFields = []string{"title", "description", "body", "published"}

// decodeCreate turns a request body into a CreateInput. Type errors and rule
// violations are reported together as entity.ValidationErrors.
func decodeCreate(r io.Reader) (artUC.CreateInput, error) {
	raw, err := decodeObject(r, inputFields...)
	if err != nil {
		return artUC.CreateInput{}, err
	}

	var (
		in   artUC.CreateInput
		errs entity.ValidationErrors
	)
	if s, ok := stringField(raw, "title", &errs); ok {
		in.Title = *s
	}
	in.Description, _ = stringField(raw, "description", &errs)
	if s, ok := stringField(raw, "body", &errs); ok {
		in.Body = *s
	}
	if b, ok := boolField(raw, "published", &errs); ok {
		in.Published = *b
	}

	if len(errs) > 0 {
		return in, merge(errs, in.Validate())
	}
	return in, nil
}

// decodeUpdate turns a request body into an UpdateInput.
func decodeUpdate(r io.Reader) (artUC.UpdateInput, error) {
	raw, err := decodeObject(r, inputFields...)
	if err != nil {
		return artUC.UpdateInput{}, err
	}

	var (
		in   artUC.UpdateInput
		errs entity.ValidationErrors
	)
	in.Title, _ = stringField(raw, "title", &errs)
	in.Description, _ = stringField(raw, "description", &errs)
	in.Body, _ = stringField(raw, "body", &errs)
	in.Published, _ = boolField(raw, "published", &errs)

	if len(errs) > 0 {
		return in, merge(errs, in.Validate())
	}
	return in, nil
}

func stringField(raw map[string]json.RawMessage, name string, errs *entity.ValidationErrors) (*string, bool) {
	v, ok := raw[name]
	if !ok {
		return nil, false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		errs.Add(name, "must be a string")
		return nil, false
	}
	return &s, true
}

// boolField accepts JSON booleans and the strings "true" and "false".
func boolField(raw map[string]json.RawMessage, name string, errs *entity.ValidationErrors) (*bool, bool) {
	v, ok := raw[name]
	if !ok {
		return nil, false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return &b, true
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		switch s {
		case "true":
			b = true
			return &b, true
		case "false":
			return &b, true
		}
	}
	errs.Add(name, "must be a boolean value")
	return nil, false
}

// merge appends rule violations for fields that have no type error yet.
func merge(typeErrs entity.ValidationErrors, ruleErr error) error {
	var rules entity.ValidationErrors
	if !errors.As(ruleErr, &rules) {
		return typeErrs
	}
	seen := make(map[string]bool, len(typeErrs))
	for _, e := range typeErrs {
		seen[e.Field] = true
	}
	for _, e := range rules {
		if !seen[e.Field] {
			typeErrs = append(typeErrs, e)
		}
	}
	return typeErrs
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

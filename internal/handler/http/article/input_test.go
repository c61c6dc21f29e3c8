package article

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles-api/internal/domain/entity"
)

func violations(t *testing.T, err error) []string {
	t.Helper()
	var verrs entity.ValidationErrors
	require.True(t, errors.As(err, &verrs), "want ValidationErrors, got %v", err)
	return verrs.Violations()
}

func TestDecodeCreate(t *testing.T) {
	in, err := decodeCreate(strings.NewReader(`{
		"id": 999,
		"createdAt": "2020-01-01T00:00:00Z",
		"title": "Hello",
		"description": "short",
		"body": "world",
		"published": true,
		"author": "ignored"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Hello", in.Title)
	require.NotNil(t, in.Description)
	assert.Equal(t, "short", *in.Description)
	assert.Equal(t, "world", in.Body)
	assert.True(t, in.Published)
}

func TestDecodeCreate_PublishedDefaultsAndCoercion(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "absent", body: `{"title":"t","body":"b"}`, want: false},
		{name: "null", body: `{"title":"t","body":"b","published":null}`, want: false},
		{name: "string true", body: `{"title":"t","body":"b","published":"true"}`, want: true},
		{name: "string false", body: `{"title":"t","body":"b","published":"false"}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := decodeCreate(strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Published)
		})
	}
}

func TestDecodeCreate_NullDescription(t *testing.T) {
	in, err := decodeCreate(strings.NewReader(`{"title":"t","body":"b","description":null}`))
	require.NoError(t, err)
	assert.Nil(t, in.Description)
}

func TestDecodeCreate_TypeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "published not coercible",
			body: `{"title":"t","body":"b","published":"yes"}`,
			want: []string{"published must be a boolean value"},
		},
		{
			name: "numeric published",
			body: `{"title":"t","body":"b","published":1}`,
			want: []string{"published must be a boolean value"},
		},
		{
			name: "non-string title also missing body",
			body: `{"title":42,"published":"maybe"}`,
			want: []string{"title must be a string", "published must be a boolean value", "body should not be empty"},
		},
		{
			name: "non-string description",
			body: `{"title":"t","body":"b","description":["x"]}`,
			want: []string{"description must be a string"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeCreate(strings.NewReader(tt.body))
			assert.Equal(t, tt.want, violations(t, err))
		})
	}
}

func TestDecodeCreate_NotAnObject(t *testing.T) {
	for _, body := range []string{``, `not json`, `[1,2]`, `"str"`, `null`, `{"title":`,
		`{"title":"x","body":"y"} garbage`, `{"title":"x","body":"y"}{}`, `{"title":"x","body":"y"} 1`} {
		_, err := decodeCreate(strings.NewReader(body))
		assert.Equal(t, []string{"body must be a JSON object"}, violations(t, err), body)
	}
}

func TestDecodeCreate_TrailingWhitespace(t *testing.T) {
	in, err := decodeCreate(strings.NewReader("{\"title\":\"x\",\"body\":\"y\"}\n\t "))
	require.NoError(t, err)
	assert.Equal(t, "x", in.Title)
}

func TestDecodeUpdate(t *testing.T) {
	in, err := decodeUpdate(strings.NewReader(`{"published":"true","id":5}`))
	require.NoError(t, err)
	assert.Nil(t, in.Title)
	assert.Nil(t, in.Body)
	require.NotNil(t, in.Published)
	assert.True(t, *in.Published)

	_, err = decodeUpdate(strings.NewReader(`{"title":"","body":7}`))
	assert.Equal(t, []string{"body must be a string", "title should not be empty"}, violations(t, err))
}

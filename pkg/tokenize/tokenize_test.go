package tokenize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "underscore delimited",
			text: "account_name",
			want: []string{"account", "account name", "name"},
		},
		{
			name: "camel case boundary",
			text: "firstName",
			want: []string{"first", "firstname", "name"},
		},
		{
			name: "single characters dropped",
			text: "a b cd",
			want: []string{"a b cd", "cd"},
		},
		{
			name: "mixed delimiters",
			text: "e-mail address",
			want: []string{"address", "e mail address", "mail"},
		},
		{
			name: "digits kept",
			text: "line_2",
			want: []string{"line", "line 2"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "punctuation only",
			text: "--- !!",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Terms(tt.text))
		})
	}
}

func TestTermsLowercaseIdempotent(t *testing.T) {
	// For inputs without camel-case boundaries, tokenization must not
	// depend on the input's case.
	inputs := []string{"Account_Name", "LEAD_SOURCE", "Email Address", "status"}
	for _, in := range inputs {
		assert.Equal(t, Terms(strings.ToLower(in)), Terms(in), "input %q", in)
	}
}

func TestQueryTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "stop words and short words removed",
			query: "show me the email",
			want:  []string{"email"},
		},
		{
			name:  "pure digits removed",
			query: "accounts created 2024",
			want:  []string{"accounts", "created"},
		},
		{
			name:  "order and duplicates preserved",
			query: "lead status lead",
			want:  []string{"lead", "status", "lead"},
		},
		{
			name:  "only stop words",
			query: "show all the",
			want:  nil,
		},
		{
			name:  "empty query",
			query: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QueryTerms(tt.query))
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "annual revenue", CleanText("Annual-Revenue!"))
	assert.Equal(t, "", CleanText("??"))
	assert.Equal(t, "e mail", CleanText("E-Mail"))
}

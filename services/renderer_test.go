package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		variables map[string]string
		want      string
	}{
		{
			name:      "basic substitution",
			template:  "Hi {name}, see you at {time}",
			variables: map[string]string{"name": "Ann", "time": "10:00"},
			want:      "Hi Ann, see you at 10:00",
		},
		{
			name:      "unknown placeholder left verbatim",
			template:  "Hi {name}, {x}",
			variables: map[string]string{"name": "Ann"},
			want:      "Hi Ann, {x}",
		},
		{
			name:      "repeated placeholder",
			template:  "{name} and {name}",
			variables: map[string]string{"name": "Ann"},
			want:      "Ann and Ann",
		},
		{
			name:      "no variables",
			template:  "Hi {name}",
			variables: nil,
			want:      "Hi {name}",
		},
		{
			name:      "empty template",
			template:  "",
			variables: map[string]string{"name": "Ann"},
			want:      "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTemplate(tt.template, tt.variables))
		})
	}
}

func TestRenderTemplateNoRecursiveSubstitution(t *testing.T) {
	// A substituted value containing {reason} must not itself be expanded.
	got := RenderTemplate("Note: {note}", map[string]string{
		"note":   "see {reason}",
		"reason": "checkup",
	})
	assert.Equal(t, "Note: see {reason}", got)
}

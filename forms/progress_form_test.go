package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestEditProgressFormValidate(t *testing.T) {
	tests := []struct {
		name     string
		form     EditProgressForm
		wantCode string
		fields   []string
	}{
		{"within range", EditProgressForm{Progress: intPtr(4), AssemblyProgress: intPtr(2)}, "", nil},
		{"zero counters", EditProgressForm{Progress: intPtr(0), AssemblyProgress: intPtr(0)}, "", nil},
		{"full counters", EditProgressForm{Progress: intPtr(10), AssemblyProgress: intPtr(10)}, "", nil},
		{"missing assembly", EditProgressForm{Progress: intPtr(4)}, CodeMissingFields, []string{"assemblyProgress"}},
		{"missing both", EditProgressForm{}, CodeMissingFields, []string{"progress", "assemblyProgress"}},
		{"over quantity", EditProgressForm{Progress: intPtr(11), AssemblyProgress: intPtr(2)}, CodeInvalidProgress, []string{"progress"}},
		{"negative", EditProgressForm{Progress: intPtr(1), AssemblyProgress: intPtr(-1)}, CodeInvalidProgress, []string{"assemblyProgress"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate(10)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			verr := requireValidationError(t, err, tt.wantCode)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

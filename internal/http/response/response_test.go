package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	resp := OK(map[string]string{"id": "1"})
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestOKMessage(t *testing.T) {
	resp := OKMessage("subscription deleted")
	assert.True(t, resp.Success)
	assert.Equal(t, "subscription deleted", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("invalid request body")
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid request body", resp.Error)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Name     string   `validate:"required"`
		Price    *float64 `validate:"required,gte=0"`
		Currency string   `validate:"omitempty,oneof=USD EUR"`
		Password string   `validate:"omitempty,min=6"`
	}

	v := validator.New()
	negative := -1.0

	tests := []struct {
		name string
		in   payload
		want []string
	}{
		{
			name: "missing required fields",
			in:   payload{},
			want: []string{
				"field Name is a required field",
				"field Price is a required field",
			},
		},
		{
			name: "negative price",
			in:   payload{Name: "Netflix", Price: &negative},
			want: []string{"field Price must be non-negative"},
		},
		{
			name: "unsupported currency",
			in:   payload{Name: "Netflix", Price: new(float64), Currency: "RUB"},
			want: []string{"field Currency has an unsupported value"},
		},
		{
			name: "unhandled tag falls to default message",
			in:   payload{Name: "Netflix", Price: new(float64), Password: "123"},
			want: []string{"field Password is not a valid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			require.Error(t, err)
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)

			resp := ValidationError(errs)
			assert.False(t, resp.Success)
			for _, fragment := range tt.want {
				assert.Contains(t, resp.Error, fragment)
			}
		})
	}
}

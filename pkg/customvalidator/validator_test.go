package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string `validate:"required,email"`
	Name   string `validate:"notblank"`
	Status string `validate:"room_status"`
	Role   string `validate:"inventory_role"`
}

func TestCustomRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	valid := sample{Email: "custodian@school.edu", Name: "Chair", Status: "maintenance", Role: "faculty"}
	assert.NoError(t, v.Struct(valid))

	tests := map[string]sample{
		"bad email":   {Email: "nope", Name: "Chair", Status: "active", Role: "faculty"},
		"blank name":  {Email: "a@b.co", Name: "   ", Status: "active", Role: "faculty"},
		"bad status":  {Email: "a@b.co", Name: "Chair", Status: "closed", Role: "faculty"},
		"admin role":  {Email: "a@b.co", Name: "Chair", Status: "active", Role: "admin"},
		"random role": {Email: "a@b.co", Name: "Chair", Status: "active", Role: "janitor"},
	}
	for name, s := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, v.Struct(s))
		})
	}
}

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Action  string `json:"action" validate:"required,oneofci=approve reject"`
	Message string `json:"message" validate:"notblank"`
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&sampleRequest{Action: "approve", Message: "hi"}))
	assert.NoError(t, v.Validate(&sampleRequest{Action: "REJECT", Message: "hi"}))

	err := v.Validate(&sampleRequest{Action: "maybe", Message: "   "})
	var fields *FieldsError
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields.Fields, "action")
	assert.Equal(t, "message must not be blank", fields.Fields["message"])
	assert.Contains(t, err.Error(), "action must be one of [approve reject]")
}

package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserError(
	t *testing.T,
) {
	err := NewUserError(nil,
		402, "payment_required", "Payment is required.")

	assert.Equal(t, 402, err.Status())
	assert.Equal(t, "payment_required", err.Code())
	assert.Equal(t, "Payment is required.", err.Message())

	// A UserError is a plain error as well (so it can flow through Trace).
	var e error = err
	assert.Equal(t, "Payment is required.", e.Error())
}

func TestExtractUserErrorThroughTrace(
	t *testing.T,
) {
	err := Trace(NewUserErrorf(Newf("underlying failure"),
		400, "amount_invalid", "The amount you provided is invalid: %s.",
		"foo"))

	u := ExtractUserError(err)
	if u == nil {
		t.Fatal("Expected a UserError")
	}
	assert.Equal(t, 400, u.Status())
	assert.Equal(t, "amount_invalid", u.Code())

	assert.Nil(t, ExtractUserError(Newf("plain failure")))
}

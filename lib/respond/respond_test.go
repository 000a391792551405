package respond

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorRespondsWithUserError(
	t *testing.T,
) {
	ctx := context.Background()
	w := httptest.NewRecorder()

	Error(ctx, w, errors.Trace(errors.NewUserErrorf(nil,
		400, "amount_invalid", "The amount you provided is invalid.")))

	assert.Equal(t, 400, w.Code)

	var body map[string]errors.ConcreteUserError
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.Nil(t, err)
	assert.Equal(t, "amount_invalid", body["error"].ErrCode)
}

func TestErrorFallsBackToInternalError(
	t *testing.T,
) {
	ctx := context.Background()
	w := httptest.NewRecorder()

	Error(ctx, w, errors.Trace(errors.Newf("unexpected failure")))

	assert.Equal(t, 500, w.Code)

	var body map[string]errors.ConcreteUserError
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.Nil(t, err)
	assert.Equal(t, "internal_error", body["error"].ErrCode)
}

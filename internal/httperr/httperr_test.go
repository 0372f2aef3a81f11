package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusinessWrapped(t *testing.T) {
	err := fmt.Errorf("update client: %w", ErrBusiness(CodeConflict))

	assert.True(t, IsBusiness(err, CodeConflict))
	assert.False(t, IsBusiness(err, CodeDuplicate))

	code, ok := BusinessCode(err)
	assert.True(t, ok)
	assert.Equal(t, CodeConflict, code)

	_, ok = BusinessCode(errors.New("boom"))
	assert.False(t, ok)
}

func TestRespondStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrBusiness(CodeDuplicate), http.StatusConflict, CodeDuplicate},
		{ErrBusiness(CodeInUse), http.StatusConflict, CodeInUse},
		{ErrBusiness(CodeConflict), http.StatusBadRequest, CodeConflict},
		{ErrBusiness(CodeInvalidReference), http.StatusBadRequest, CodeInvalidReference},
		{ErrBusiness(CodeNotFound), http.StatusNotFound, CodeNotFound},
		{ErrBusiness("invalid_scheduled_at"), http.StatusBadRequest, "invalid_scheduled_at"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/client", nil)

			Respond(c, "cliente", tc.err)

			assert.Equal(t, tc.status, w.Code)

			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.NotContains(t, body.Message, "connection reset")
		})
	}
}

func TestRespondUnknownAttachesError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/client", nil)

	Respond(c, "cliente", errors.New("db down"))

	require.Len(t, c.Errors, 1)
	assert.EqualError(t, c.Errors[0].Err, "db down")
}

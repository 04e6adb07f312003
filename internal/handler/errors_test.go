package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "hackreg/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{"unauthenticated", apperrors.ErrUnauthenticated, http.StatusUnauthorized, "user not authenticated"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, apperrors.ErrForbidden.Error()},
		{"duplicate member", &apperrors.DuplicateMemberError{Email: "a@x.com"}, http.StatusConflict, "a@x.com is already registered with a team"},
		{"already registered", apperrors.ErrTeamAlreadyRegistered, http.StatusConflict, apperrors.ErrTeamAlreadyRegistered.Error()},
		{"registration in progress", apperrors.ErrRegistrationInProgress, http.StatusConflict, apperrors.ErrRegistrationInProgress.Error()},
		{"invalid transition", apperrors.ErrInvalidStatusTransition, http.StatusConflict, apperrors.ErrInvalidStatusTransition.Error()},
		{"team full", apperrors.ErrTeamFull, http.StatusBadRequest, apperrors.ErrTeamFull.Error()},
		{"missing fields", apperrors.ErrMissingFields, http.StatusBadRequest, apperrors.ErrMissingFields.Error()},
		{"storage", &apperrors.StorageError{Cause: cause}, http.StatusBadGateway, "failed to upload payment receipt: connection reset"},
		{"persistence surfaces cause", &apperrors.PersistenceError{Op: "insert members", Cause: cause}, http.StatusInternalServerError, "failed to insert members: connection reset"},
		{"team not found", fmt.Errorf("lookup: %w", apperrors.ErrTeamNotFound), http.StatusNotFound, "lookup: team not found"},
		{"member not found", apperrors.ErrMemberNotFound, http.StatusNotFound, "member not found"},
		{"unknown", cause, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.expectedError, resp["error"])
		})
	}

	t.Run("validation lists issues", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, apperrors.NewValidationError([]apperrors.Issue{
			{Path: "members.0.rollNo", Message: "Roll number is required for the team leader"},
			{Path: "upiReference", Message: "UPI reference must be at least 6 characters"},
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Roll number is required for the team leader", resp["error"])
		issues := resp["issues"].([]interface{})
		require.Len(t, issues, 2)
		assert.Equal(t, "members.0.rollNo", issues[0].(map[string]interface{})["path"])
	})
}

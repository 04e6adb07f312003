package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"
	"hackreg/internal/service/mocks"
	"hackreg/test/fixtures"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAdminRouter(m *mocks.MockAdminService) *gin.Engine {
	handler := NewAdminHandler(m)
	router := gin.New()
	router.GET("/admin/teams", handler.ListTeams)
	router.GET("/admin/teams/:teamId", handler.GetTeam)
	router.POST("/admin/teams/:teamId/verify", handler.VerifyPayment)
	router.POST("/admin/teams/:teamId/reject", handler.RejectPayment)
	router.GET("/admin/stats", handler.Stats)
	router.GET("/admin/export.csv", handler.ExportCSV)
	return router
}

func TestNewAdminHandler(t *testing.T) {
	mockService := &mocks.MockAdminService{}
	handler := NewAdminHandler(mockService)

	assert.NotNil(t, handler)
	assert.Equal(t, mockService, handler.service)
}

func TestAdminHandler_ListTeams(t *testing.T) {
	t.Run("passes the status filter through", func(t *testing.T) {
		var gotStatus models.PaymentStatus
		mockService := &mocks.MockAdminService{
			ListTeamsFunc: func(ctx context.Context, status models.PaymentStatus) (*models.TeamListResponse, error) {
				gotStatus = status
				team := fixtures.NewTeam().Build()
				team.MemberCount = 3
				return &models.TeamListResponse{Items: []models.Team{team}}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/admin/teams?status=pending", nil)
		w := httptest.NewRecorder()
		newAdminRouter(mockService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.PaymentPending, gotStatus)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		items := resp["data"].(map[string]interface{})["items"].([]interface{})
		require.Len(t, items, 1)
		assert.Equal(t, float64(3), items[0].(map[string]interface{})["memberCount"])
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		mockService := &mocks.MockAdminService{
			ListTeamsFunc: func(ctx context.Context, status models.PaymentStatus) (*models.TeamListResponse, error) {
				return nil, apperrors.NewValidationError([]apperrors.Issue{{Path: "status", Message: "Unknown payment status"}})
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/admin/teams?status=paid", nil)
		w := httptest.NewRecorder()
		newAdminRouter(mockService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_GetTeam(t *testing.T) {
	teamID := primitive.NewObjectID()

	tests := []struct {
		name           string
		path           string
		mockSetup      func(*mocks.MockAdminService)
		expectedStatus int
	}{
		{
			name: "returns team with receipt link",
			path: "/admin/teams/" + teamID.Hex(),
			mockSetup: func(m *mocks.MockAdminService) {
				m.GetTeamDetailsFunc = func(ctx context.Context, id primitive.ObjectID) (*models.TeamWithMembers, error) {
					return &models.TeamWithMembers{Team: fixtures.NewTeam().WithID(id).Build(), ReceiptURL: "https://receipts.example.com/r.png"}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid team id",
			path:           "/admin/teams/not-an-id",
			mockSetup:      func(m *mocks.MockAdminService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "team not found",
			path: "/admin/teams/" + teamID.Hex(),
			mockSetup: func(m *mocks.MockAdminService) {
				m.GetTeamDetailsFunc = func(ctx context.Context, id primitive.ObjectID) (*models.TeamWithMembers, error) {
					return nil, apperrors.ErrTeamNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mocks.MockAdminService{}
			tt.mockSetup(mockService)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			newAdminRouter(mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAdminHandler_VerifyPayment(t *testing.T) {
	teamID := primitive.NewObjectID()

	t.Run("verifies without a body", func(t *testing.T) {
		var gotNotice *models.VerifyPaymentRequest
		mockService := &mocks.MockAdminService{
			VerifyTeamPaymentFunc: func(ctx context.Context, id primitive.ObjectID, notice *models.VerifyPaymentRequest) error {
				gotNotice = notice
				return nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/admin/teams/"+teamID.Hex()+"/verify", nil)
		w := httptest.NewRecorder()
		newAdminRouter(mockService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotNotice)
		assert.Empty(t, gotNotice.LeaderEmail)
		assert.Contains(t, w.Body.String(), `"paymentStatus":"verified"`)
	})

	t.Run("passes email details through", func(t *testing.T) {
		var gotNotice *models.VerifyPaymentRequest
		mockService := &mocks.MockAdminService{
			VerifyTeamPaymentFunc: func(ctx context.Context, id primitive.ObjectID, notice *models.VerifyPaymentRequest) error {
				gotNotice = notice
				return nil
			},
		}

		body := `{"teamName":"Quantum","leaderEmail":"asha@example.com","leaderName":"Asha"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/teams/"+teamID.Hex()+"/verify", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newAdminRouter(mockService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Quantum", gotNotice.TeamName)
		assert.Equal(t, "asha@example.com", gotNotice.LeaderEmail)
	})

	t.Run("already decided", func(t *testing.T) {
		mockService := &mocks.MockAdminService{
			VerifyTeamPaymentFunc: func(ctx context.Context, id primitive.ObjectID, notice *models.VerifyPaymentRequest) error {
				return apperrors.ErrInvalidStatusTransition
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/admin/teams/"+teamID.Hex()+"/verify", nil)
		w := httptest.NewRecorder()
		newAdminRouter(mockService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		mockService := &mocks.MockAdminService{}

		req := httptest.NewRequest(http.MethodPost, "/admin/teams/"+teamID.Hex()+"/verify", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newAdminRouter(mockService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_RejectPayment(t *testing.T) {
	teamID := primitive.NewObjectID()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"rejects a pending team", nil, http.StatusOK},
		{"unknown team", apperrors.ErrTeamNotFound, http.StatusNotFound},
		{"already decided", apperrors.ErrInvalidStatusTransition, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mocks.MockAdminService{
				RejectTeamPaymentFunc: func(ctx context.Context, id primitive.ObjectID) error {
					return tt.err
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/admin/teams/"+teamID.Hex()+"/reject", nil)
			w := httptest.NewRecorder()
			newAdminRouter(mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	mockService := &mocks.MockAdminService{
		StatsFunc: func(ctx context.Context) (*models.AdminStats, error) {
			return &models.AdminStats{TotalTeams: 3, PendingTeams: 1, VerifiedTeams: 2, TotalMembers: 9, CheckedIn: 4}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	newAdminRouter(mockService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["totalTeams"])
	assert.Equal(t, float64(4), data["checkedIn"])
}

func TestAdminHandler_ExportCSV(t *testing.T) {
	csv := "Team Name,Leader Name,Leader Phone,Member Name,Food Pref,Accommodation\n" +
		"Quantum,Asha,9876543210,Asha,Veg,Yes"

	t.Run("serves the CSV as an attachment", func(t *testing.T) {
		mockService := &mocks.MockAdminService{
			ExportRosterCSVFunc: func(ctx context.Context, status models.PaymentStatus) (string, error) {
				return csv, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/admin/export.csv?status=verified", nil)
		w := httptest.NewRecorder()
		newAdminRouter(mockService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, csv, w.Body.String())
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="roster-verified.csv"`, w.Header().Get("Content-Disposition"))
	})

	t.Run("unfiltered export filename", func(t *testing.T) {
		assert.Equal(t, "roster.csv", exportFilename(""))
	})

	t.Run("invalid status", func(t *testing.T) {
		mockService := &mocks.MockAdminService{
			ExportRosterCSVFunc: func(ctx context.Context, status models.PaymentStatus) (string, error) {
				return "", apperrors.NewValidationError([]apperrors.Issue{{Path: "status", Message: "Unknown payment status"}})
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/admin/export.csv?status=paid", nil)
		w := httptest.NewRecorder()
		newAdminRouter(mockService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

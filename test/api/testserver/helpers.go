//go:build api

package testserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hackreg/internal/models"
	"hackreg/test/testutil"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identities used across API tests.
var (
	AdminIdentity  = models.Identity{ID: "google-oauth2|admin", Email: TestAdminEmail}
	LeaderIdentity = models.Identity{ID: "google-oauth2|leader", Email: "asha@example.com"}
	OtherIdentity  = models.Identity{ID: "google-oauth2|other", Email: "ravi@example.com"}
)

// TokenFor issues an access token for identity.
func (ts *TestServer) TokenFor(t *testing.T, identity models.Identity) string {
	t.Helper()

	token, err := ts.JWTManager.GenerateToken(identity.ID, identity.Email)
	require.NoError(t, err, "failed to generate token")
	return token
}

// Register submits a registration as identity and returns the raw response.
// A nil receipt omits the file part.
func (ts *TestServer) Register(t *testing.T, identity models.Identity, req models.RegistrationRequest, receipt *models.ReceiptFile) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(req)
	require.NoError(t, err, "failed to marshal registration payload")

	var files []testutil.UploadFile
	if receipt != nil {
		files = append(files, testutil.UploadFile{
			Field:       "receipt",
			Filename:    receipt.Filename,
			ContentType: receipt.ContentType,
			Data:        receipt.Data,
		})
	}

	return testutil.MakeMultipartRequest(t, ts.Router, http.MethodPost, "/api/v1/registrations",
		ts.TokenFor(t, identity), map[string]string{"payload": string(payload)}, files...)
}

// MustRegister registers a team and returns its ID.
func (ts *TestServer) MustRegister(t *testing.T, identity models.Identity, req models.RegistrationRequest) primitive.ObjectID {
	t.Helper()

	w := ts.Register(t, identity, req, req.Receipt)
	require.Equal(t, http.StatusCreated, w.Code, "registration should return 201, got: %s", w.Body.String())

	id, err := primitive.ObjectIDFromHex(GetIDFromResponse(t, w, "teamId"))
	require.NoError(t, err, "teamId should be an ObjectID")
	return id
}

// Do performs a JSON request as identity. A zero identity sends no token.
func (ts *TestServer) Do(t *testing.T, identity models.Identity, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	if identity.IsZero() {
		return testutil.MakeRequest(t, ts.Router, method, path, body)
	}
	return testutil.MakeAuthRequest(t, ts.Router, method, path, ts.TokenFor(t, identity), body)
}

// GetIDFromResponse extracts a string field from the response data.
func GetIDFromResponse(t *testing.T, w *httptest.ResponseRecorder, field string) string {
	t.Helper()

	resp := testutil.ParseAPIResponse(t, w)
	require.True(t, resp.Success, "response should be successful: %s", w.Body.String())

	id, ok := resp.Data[field].(string)
	require.True(t, ok, "%s should be a string", field)
	return id
}

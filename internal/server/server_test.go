package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/halal-food-club/api/internal/config"
	"github.com/sngm3741/halal-food-club/api/internal/interfaces/http/webhook"
)

const (
	testJWTSecret     = "jwt-secret"
	testIssuer        = "halal-food-club-auth"
	testWebhookSecret = "whsec_test"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	cfg := config.Config{
		Addr:                 ":0",
		StoreBackend:         config.BackendMemory,
		ServerLog:            log.New(io.Discard, "", 0),
		JWTConfigs:           []config.JWTConfig{{Issuer: testIssuer, Secret: []byte(testJWTSecret)}},
		AdminRole:            "admin",
		AllowedOrigins:       []string{"*"},
		PaymentWebhookSecret: testWebhookSecret,
		WebhookTolerance:     5 * time.Minute,
		RetentionWindow:      30 * 24 * time.Hour,
		RetentionInterval:    time.Hour,
		DefaultSearchRadius:  10,
	}
	srv, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close(context.Background()) })
	return srv, srv.Handler()
}

func token(t *testing.T, subject, role, issuer string, expires time.Time) string {
	t.Helper()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Name: "User " + subject,
		Role: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func call(t *testing.T, h http.Handler, method, target, bearer string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t)
	rec := call(t, h, http.MethodGet, "/healthz", "", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutes_RequireModeratorRole(t *testing.T) {
	_, h := newTestServer(t)
	later := time.Now().Add(time.Hour)

	rec := call(t, h, http.MethodGet, "/admin/submissions", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h, http.MethodGet, "/admin/submissions", token(t, "u1", "", testIssuer, later), nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, h, http.MethodGet, "/admin/submissions", token(t, "m1", "admin", "someone-else", later), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h, http.MethodGet, "/admin/submissions", token(t, "m1", "admin", testIssuer, time.Now().Add(-time.Hour)), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h, http.MethodGet, "/admin/submissions", token(t, "m1", "admin", testIssuer, later), nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmissionToDiscoveryFlow(t *testing.T) {
	_, h := newTestServer(t)
	later := time.Now().Add(time.Hour)
	owner := token(t, "owner-1", "", testIssuer, later)
	moderator := token(t, "mod-1", "admin", testIssuer, later)

	submission, err := json.Marshal(map[string]any{
		"name":          "Al-Madina",
		"cuisines":      []string{"Turkish", "Grill"},
		"address":       "1 Stratford Rd, Birmingham",
		"postcode":      "B11 1JA",
		"location":      map[string]float64{"lat": 52.4625, "lng": -1.8848},
		"phone":         "0121 000 0000",
		"hygieneRating": "5",
	})
	require.NoError(t, err)
	rec := call(t, h, http.MethodPost, "/submissions", owner, submission, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = call(t, h, http.MethodPost, "/admin/submissions/"+created.ID+"/approve", moderator, nil, nil)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	payment, err := json.Marshal(map[string]string{
		"paymentReference": "pi_123",
		"submissionId":     created.ID,
		"outcome":          "succeeded",
	})
	require.NoError(t, err)
	sig := map[string]string{webhook.SignatureHeader: webhook.Sign([]byte(testWebhookSecret), time.Now(), payment)}
	for i := 0; i < 2; i++ {
		rec = call(t, h, http.MethodPost, "/webhooks/payment", "", payment, sig)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = call(t, h, http.MethodPost, "/admin/submissions/"+created.ID+"/approve", moderator, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodGet, "/restaurants/search?lat=52.47&lng=-1.89&radius=5&cuisine=grill", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results struct {
		Items []struct {
			Name          string  `json:"name"`
			DistanceMiles float64 `json:"distanceMiles"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results.Items, 1)
	assert.Equal(t, "Al-Madina", results.Items[0].Name)
	assert.Less(t, results.Items[0].DistanceMiles, 1.0)

	rec = call(t, h, http.MethodGet, "/submissions/"+created.ID, owner, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status struct {
		Status       string `json:"status"`
		RestaurantID string `json:"restaurantId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "approved", status.Status)
	assert.NotEmpty(t, status.RestaurantID)
}

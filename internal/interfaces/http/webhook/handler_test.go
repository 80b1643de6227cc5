package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
	"github.com/sngm3741/halal-food-club/api/internal/infrastructure/memory"
)

const testSecret = "whsec_test"

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type webhookFixture struct {
	router       http.Handler
	submissions  adminapp.SubmissionService
	submissionID string
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	now := func() time.Time { return testNow }

	repo := memory.NewSubmissionRepository()
	store := memory.NewRestaurantStore()
	submissions := adminapp.NewSubmissionService(repo, now)
	lifecycle := adminapp.NewLifecycleService(adminapp.LifecycleDeps{
		Submissions: repo,
		Restaurants: store.Admin(),
		Locker:      memory.NewKeyedLocker(),
		Logger:      logger,
		Now:         now,
	})

	sub, err := submissions.Submit(context.Background(), adminapp.SubmitCommand{
		OwnerUID:      "owner-1",
		Name:          "Al-Madina",
		Cuisines:      []string{"Turkish"},
		Address:       "1 Stratford Rd, Birmingham",
		Postcode:      "B11 1JA",
		Lat:           52.4625,
		Lng:           -1.8848,
		Phone:         "0121 000 0000",
		HygieneRating: "5",
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandler(Config{Logger: logger, Lifecycle: lifecycle, Secret: testSecret, Now: now}).Register(r)
	return &webhookFixture{router: r, submissions: submissions, submissionID: sub.ID}
}

func (f *webhookFixture) post(t *testing.T, payload any, sign func([]byte) string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
	if sign != nil {
		req.Header.Set(SignatureHeader, sign(body))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func validSig(body []byte) string {
	return Sign([]byte(testSecret), testNow, body)
}

func TestPaymentWebhook_RecordsAndReplays(t *testing.T) {
	f := newWebhookFixture(t)
	event := map[string]string{"paymentReference": "pay_1", "submissionId": f.submissionID, "outcome": "succeeded"}

	rec := f.post(t, event, validSig)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var ack paymentAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.Equal(t, "recorded", ack.Status)
	assert.True(t, ack.Paid)

	rec = f.post(t, event, validSig)
	assert.Equal(t, http.StatusOK, rec.Code)

	sub, err := f.submissions.Detail(context.Background(), f.submissionID)
	require.NoError(t, err)
	assert.True(t, sub.Paid)
	assert.Equal(t, "pay_1", sub.PaymentReference)
}

func TestPaymentWebhook_DifferentReferenceConflicts(t *testing.T) {
	f := newWebhookFixture(t)
	rec := f.post(t, map[string]string{"paymentReference": "pay_1", "submissionId": f.submissionID, "outcome": "succeeded"}, validSig)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.post(t, map[string]string{"paymentReference": "pay_2", "submissionId": f.submissionID, "outcome": "succeeded"}, validSig)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPaymentWebhook_FailedOutcomeIgnored(t *testing.T) {
	f := newWebhookFixture(t)
	rec := f.post(t, map[string]string{"paymentReference": "pay_1", "submissionId": f.submissionID, "outcome": "failed"}, validSig)
	require.Equal(t, http.StatusOK, rec.Code)

	sub, err := f.submissions.Detail(context.Background(), f.submissionID)
	require.NoError(t, err)
	assert.False(t, sub.Paid)
}

func TestPaymentWebhook_RejectsBadSignatures(t *testing.T) {
	f := newWebhookFixture(t)
	event := map[string]string{"paymentReference": "pay_1", "submissionId": f.submissionID, "outcome": "succeeded"}

	cases := map[string]func([]byte) string{
		"missing":    nil,
		"wrong key":  func(b []byte) string { return Sign([]byte("other"), testNow, b) },
		"stale":      func(b []byte) string { return Sign([]byte(testSecret), testNow.Add(-time.Hour), b) },
		"malformed":  func([]byte) string { return "garbage" },
		"bad hex":    func([]byte) string { return "t=1,v1=zz" },
		"other body": func([]byte) string { return Sign([]byte(testSecret), testNow, []byte("{}")) },
	}
	for name, sign := range cases {
		t.Run(name, func(t *testing.T) {
			rec := f.post(t, event, sign)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	sub, err := f.submissions.Detail(context.Background(), f.submissionID)
	require.NoError(t, err)
	assert.False(t, sub.Paid)
}

func TestPaymentWebhook_UnknownSubmission(t *testing.T) {
	f := newWebhookFixture(t)
	rec := f.post(t, map[string]string{"paymentReference": "pay_1", "submissionId": "missing", "outcome": "succeeded"}, validSig)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentWebhook_InvalidPayload(t *testing.T) {
	f := newWebhookFixture(t)
	rec := f.post(t, map[string]string{"submissionId": f.submissionID, "outcome": "succeeded"}, validSig)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerify_AcceptsRotatedSecret(t *testing.T) {
	body := []byte(`{"ok":true}`)
	oldSig := Sign([]byte("old"), testNow, body)
	newSig := Sign([]byte("new"), testNow, body)
	_, newV1, _ := strings.Cut(newSig, ",")
	header := oldSig + "," + newV1

	assert.NoError(t, Verify([]byte("new"), header, body, testNow, time.Minute))
	assert.NoError(t, Verify([]byte("old"), header, body, testNow, time.Minute))
}

package admin

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

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
	"github.com/sngm3741/halal-food-club/api/internal/infrastructure/memory"
	"github.com/sngm3741/halal-food-club/api/internal/interfaces/http/common"
)

type adminFixture struct {
	router      http.Handler
	submissions adminapp.SubmissionService
	lifecycle   adminapp.LifecycleService
	store       *memory.RestaurantStore
	now         time.Time
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	f := &adminFixture{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return f.now }
	logger := log.New(io.Discard, "", 0)

	repo := memory.NewSubmissionRepository()
	f.store = memory.NewRestaurantStore()
	f.submissions = adminapp.NewSubmissionService(repo, clock)
	f.lifecycle = adminapp.NewLifecycleService(adminapp.LifecycleDeps{
		Submissions: repo,
		Restaurants: f.store.Admin(),
		Locker:      memory.NewKeyedLocker(),
		Logger:      logger,
		Now:         clock,
	})
	sweeper := adminapp.NewRetentionSweeper(f.lifecycle, adminapp.DefaultRetentionWindow, time.Hour, logger, clock)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := common.ContextWithUser(req.Context(), common.AuthenticatedUser{ID: "mod-1", Role: "admin"})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	NewHandler(Config{
		Logger:      logger,
		Submissions: f.submissions,
		Lifecycle:   f.lifecycle,
		Retention:   sweeper,
	}).Register(r)
	f.router = r
	return f
}

func (f *adminFixture) submit(t *testing.T, name string) string {
	t.Helper()
	sub, err := f.submissions.Submit(context.Background(), adminapp.SubmitCommand{
		OwnerUID:      "owner-1",
		Name:          name,
		Cuisines:      []string{"Turkish"},
		Address:       "1 Stratford Rd, Birmingham",
		Postcode:      "B11 1JA",
		Lat:           52.4625,
		Lng:           -1.8848,
		Phone:         "0121 000 0000",
		HygieneRating: "5",
	})
	require.NoError(t, err)
	return sub.ID
}

func (f *adminFixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func TestApprove_RequiresPayment(t *testing.T) {
	f := newAdminFixture(t)
	id := f.submit(t, "Al-Madina")

	rec := f.do(t, http.MethodPost, "/submissions/"+id+"/approve", nil)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Equal(t, 0, f.store.Admin().Count())
}

func TestApprove_PublishesOnce(t *testing.T) {
	f := newAdminFixture(t)
	id := f.submit(t, "Al-Madina")
	_, err := f.lifecycle.RecordPayment(context.Background(), id, "pay_1")
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/submissions/"+id+"/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp approveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "approved", resp.Status)
	assert.NotEmpty(t, resp.RestaurantID)

	rec = f.do(t, http.MethodPost, "/submissions/"+id+"/approve", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, f.store.Admin().Count())

	rec = f.do(t, http.MethodGet, "/submissions/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail submissionDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, resp.RestaurantID, detail.RestaurantID)
	assert.Equal(t, "pay_1", detail.PaymentReference)
}

func TestApprove_UnknownSubmission(t *testing.T) {
	f := newAdminFixture(t)
	rec := f.do(t, http.MethodPost, "/submissions/nope/approve", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReject_StoresReason(t *testing.T) {
	f := newAdminFixture(t)
	id := f.submit(t, "Al-Madina")

	rec := f.do(t, http.MethodPost, "/submissions/"+id+"/reject", map[string]string{"reason": "not halal certified"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var detail submissionDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "rejected", detail.Status)
	assert.Equal(t, "not halal certified", detail.RejectReason)

	rec = f.do(t, http.MethodPost, "/submissions/"+id+"/reject", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/submissions/"+id+"/approve", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmissionList_FiltersByStatus(t *testing.T) {
	f := newAdminFixture(t)
	pending := f.submit(t, "Pending Place")
	rejected := f.submit(t, "Rejected Place")
	_, err := f.lifecycle.Reject(context.Background(), rejected, "")
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/submissions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list submissionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, pending, list.Items[0].ID)

	rec = f.do(t, http.MethodGet, "/submissions?status=REJECTED", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, rejected, list.Items[0].ID)

	rec = f.do(t, http.MethodGet, "/submissions?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRetentionSweep_PurgesExpiredRejections(t *testing.T) {
	f := newAdminFixture(t)
	id := f.submit(t, "Rejected Place")
	_, err := f.lifecycle.Reject(context.Background(), id, "duplicate listing")
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/retention/sweep", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report purgeReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 0, report.Deleted)

	f.now = f.now.Add(31 * 24 * time.Hour)
	rec = f.do(t, http.MethodPost, "/retention/sweep", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Deleted)
	assert.Empty(t, report.Failed)

	rec = f.do(t, http.MethodGet, "/submissions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

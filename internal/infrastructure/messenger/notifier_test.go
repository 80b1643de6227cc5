package messenger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

func sampleSubmission() admindomain.Submission {
	return admindomain.Submission{
		ID:               "sub-1",
		Name:             "Al-Madina",
		Cuisines:         admindomain.CuisineList{"Turkish", "Grill"},
		Postcode:         "B11 1JA",
		PaymentReference: "pi_1",
	}
}

func TestNotifyAwaitingReviewPostsMessage(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	n := NewNotifier(Config{
		Endpoint:           server.URL + "/",
		Destination:        "discord",
		AdminSubmissionURL: "https://admin.example/submissions",
	})
	require.NoError(t, n.NotifyAwaitingReview(context.Background(), sampleSubmission()))

	assert.Equal(t, "sub-1", got["userId"])
	assert.Equal(t, "discord", got["destination"])
	assert.Contains(t, got["text"], "**Al-Madina** has paid")
	assert.Contains(t, got["text"], "Turkish / Grill")
	assert.Contains(t, got["text"], "https://admin.example/submissions/sub-1")
}

func TestNotifyAwaitingReviewRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNotifier(Config{Endpoint: server.URL, Attempts: 3})
	require.NoError(t, n.NotifyAwaitingReview(context.Background(), sampleSubmission()))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestNotifyAwaitingReviewReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	err := NewNotifier(Config{Endpoint: server.URL, Attempts: 2}).NotifyAwaitingReview(context.Background(), sampleSubmission())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=500")
}

func TestNotifyAwaitingReviewDisabledWithoutEndpoint(t *testing.T) {
	assert.NoError(t, NewNotifier(Config{}).NotifyAwaitingReview(context.Background(), sampleSubmission()))
}

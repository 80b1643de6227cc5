package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
)

func TestEncodeEvent(t *testing.T) {
	at := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	event := adminapp.LifecycleEvent{
		Type:         adminapp.EventSubmissionApproved,
		SubmissionID: "sub-1",
		RestaurantID: "rest-1",
		OccurredAt:   at,
	}

	msg, err := encodeEvent(event)
	require.NoError(t, err)
	assert.Equal(t, []byte("sub-1"), msg.Key)
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "submission.approved", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "submission.approved", decoded["type"])
	assert.Equal(t, "rest-1", decoded["restaurantId"])
	assert.NotContains(t, decoded, "paymentReference")
}

func TestNewPublisherKeysByHash(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "halal-food-club.lifecycle")
	defer p.Close()

	assert.Equal(t, "halal-food-club.lifecycle", p.writer.Topic)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
}

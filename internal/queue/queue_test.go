package queue

import (
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

func TestRetryCountReadsHeader(t *testing.T) {
	cases := []struct {
		name    string
		headers amqp.Table
		want    int32
	}{
		{"nil headers", nil, 0},
		{"absent header", amqp.Table{}, 0},
		{"int32 value", amqp.Table{"x-retry-count": int32(2)}, 2},
		{"int64 value", amqp.Table{"x-retry-count": int64(3)}, 3},
		{"mistyped value", amqp.Table{"x-retry-count": "2"}, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, retryCount(tc.headers), tc.name)
	}
}

func TestRetryCountCapsAtMaxRetries(t *testing.T) {
	// A delivery carrying the cap is past its last attempt and must not be
	// re-published again.
	assert.False(t, retryCount(amqp.Table{"x-retry-count": int32(maxRetries)}) < maxRetries)
	assert.True(t, retryCount(amqp.Table{"x-retry-count": int32(maxRetries - 1)}) < maxRetries)
}

package homework

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")

	assert.Equal(t, KindNetwork, KindOf(NewNetworkError(cause)))
	assert.Equal(t, KindUpstream, KindOf(fmt.Errorf("fetch: %w", NewUpstreamError(403, "bad_token", "invalid"))))
	assert.Equal(t, KindSchema, KindOf(NewSchemaError("not an object")))
	assert.Equal(t, KindUnknownStatus, KindOf(NewUnknownStatusError("lost")))
	assert.Equal(t, KindUnknown, KindOf(cause))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestErrorText(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError(cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)

	up := NewUpstreamError(403, "bad_token", "invalid")
	assert.Contains(t, up.Error(), "bad_token")
	assert.Contains(t, up.Error(), "invalid")
	assert.Contains(t, up.Error(), "403")
}

func TestVerdict(t *testing.T) {
	for _, s := range []Status{StatusApproved, StatusReviewing, StatusRejected} {
		v, ok := Verdict(s)
		assert.True(t, ok, s)
		assert.NotEmpty(t, v, s)
	}
	_, ok := Verdict("lost")
	assert.False(t, ok)
}

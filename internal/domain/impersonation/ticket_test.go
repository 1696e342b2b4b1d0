package impersonation

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketHeaderRoundTrip(t *testing.T) {
	ticket := Ticket{TargetUserID: 42}

	parsed, ok := FromHeader(ticket.HeaderValue())

	require.True(t, ok)
	assert.Equal(t, ticket, parsed)
}

func TestFromHeaderRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "abc", "-1", "0", "1.5"} {
		_, ok := FromHeader(raw)
		assert.False(t, ok, "raw=%q", raw)
	}
}

// Starting the same view twice yields the same ticket — begin is idempotent.
func TestTicketIdempotent(t *testing.T) {
	first := Ticket{TargetUserID: 7}
	second := Ticket{TargetUserID: 7}

	assert.Equal(t, first.HeaderValue(), second.HeaderValue())
}

func TestIsReadOnly(t *testing.T) {
	assert.True(t, IsReadOnly(http.MethodGet))
	assert.True(t, IsReadOnly(http.MethodHead))

	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		assert.False(t, IsReadOnly(m), "method=%s", m)
	}
}

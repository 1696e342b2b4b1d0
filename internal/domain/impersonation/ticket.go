package impersonation

import (
	"net/http"
	"strconv"
)

// Header carries the ticket on read requests. It is never an authentication
// credential: the backend decides per endpoint whether to honor it, and
// mutating endpoints never do.
const Header = "X-Impersonate-User"

// Ticket is the client-held "view as user" value. It narrows the read view
// to the target user; it grants nothing.
type Ticket struct {
	TargetUserID uint
}

func FromHeader(value string) (Ticket, bool) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return Ticket{}, false
	}
	return Ticket{TargetUserID: uint(id)}, true
}

func (t Ticket) HeaderValue() string {
	return strconv.FormatUint(uint64(t.TargetUserID), 10)
}

// IsReadOnly reports whether a request may be served under an impersonated
// view. Anything that can mutate tenant, billing or identity state must run
// as the real principal.
func IsReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

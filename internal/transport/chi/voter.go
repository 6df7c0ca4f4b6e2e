package chi

import (
	"net"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// VoterIdentity derives the pseudonymous voter id from the client address.
// Raw addresses never reach the ledger.
type VoterIdentity struct {
	salt string
}

// NewVoterIdentity creates a VoterIdentity with the given salt.
func NewVoterIdentity(salt string) *VoterIdentity {
	return &VoterIdentity{salt: salt}
}

// ID returns a stable hex id for the request's client address.
// Run chi's RealIP middleware first when behind a proxy.
func (v *VoterIdentity) ID(r *http.Request) string {
	ip := clientIP(r)
	if ip == "" {
		return ""
	}
	d := xxhash.New()
	_, _ = d.WriteString(v.salt)
	_, _ = d.WriteString("|")
	_, _ = d.WriteString(ip)
	return strconv.FormatUint(d.Sum64(), 16)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

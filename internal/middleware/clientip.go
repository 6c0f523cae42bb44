package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPResolver derives the client address for rate limiting and audit events.
// Forwarding headers are honoured only when the direct peer is a trusted
// proxy; otherwise any client could pick its own address.
type IPResolver struct {
	trusted []netip.Prefix
}

// NewIPResolver accepts proxy entries as single addresses or CIDR ranges.
func NewIPResolver(trustedProxies []string) (*IPResolver, error) {
	r := &IPResolver{}

	for _, entry := range trustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
			}
			r.trusted = append(r.trusted, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		r.trusted = append(r.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}

	return r, nil
}

// ClientIP returns the connection peer unless it is a trusted proxy. Behind
// a trusted proxy it walks X-Forwarded-For from the right and returns the
// first hop that is not itself trusted, falling back to X-Real-IP.
func (r *IPResolver) ClientIP(req *http.Request) string {
	peer := remoteHost(req)
	if !r.isTrusted(peer) {
		return peer
	}

	if forwarded := req.Header.Values("X-Forwarded-For"); len(forwarded) > 0 {
		hops := strings.Split(strings.Join(forwarded, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if _, err := netip.ParseAddr(hop); err != nil {
				break
			}
			if !r.isTrusted(hop) {
				return hop
			}
		}
	}

	if realIP := strings.TrimSpace(req.Header.Get("X-Real-IP")); realIP != "" {
		if _, err := netip.ParseAddr(realIP); err == nil {
			return realIP
		}
	}

	return peer
}

func (r *IPResolver) isTrusted(ip string) bool {
	if r == nil || len(r.trusted) == 0 {
		return false
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range r.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}

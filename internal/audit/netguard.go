package audit

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"syscall"
	"time"
)

var errGuardedAddress = errors.New("connection to private/reserved network address refused")

// Ranges outside the netip.Addr helper coverage (IsLoopback, IsPrivate,
// IsLinkLocalUnicast, IsUnspecified).
var reservedNets = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),   // carrier-grade NAT (RFC 6598)
	netip.MustParsePrefix("192.0.0.0/24"),    // IETF protocol assignments (RFC 6890)
	netip.MustParsePrefix("192.0.2.0/24"),    // TEST-NET-1 (RFC 5737)
	netip.MustParsePrefix("198.18.0.0/15"),   // benchmarking (RFC 2544)
	netip.MustParsePrefix("198.51.100.0/24"), // TEST-NET-2 (RFC 5737)
	netip.MustParsePrefix("203.0.113.0/24"),  // TEST-NET-3 (RFC 5737)
}

// guardedDialer returns a dialer that refuses connections to loopback,
// private, link-local, and reserved address ranges. The check runs at dial
// time, after DNS resolution, so a hostname rebinding to an internal
// address is still refused. Intended for CI environments where an external
// link must never probe into the build network.
func guardedDialer() *net.Dialer {
	return &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   refuseGuardedAddress,
	}
}

func refuseGuardedAddress(_, address string, _ syscall.RawConn) error {
	addrPort, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %w", errGuardedAddress, err)
	}
	if !isPublicAddr(addrPort.Addr()) {
		return fmt.Errorf("%w: %s", errGuardedAddress, addrPort.Addr())
	}
	return nil
}

// isPublicAddr reports whether addr is globally routable unicast. Mapped
// IPv4-in-IPv6 addresses are unwrapped first so ::ffff:127.0.0.1 cannot
// slip past the IPv4 checks.
func isPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()

	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}
	for _, p := range reservedNets {
		if p.Contains(addr) {
			return false
		}
	}
	return true
}

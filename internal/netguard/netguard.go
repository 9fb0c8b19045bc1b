// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package netguard keeps server-side fetches of user-supplied URLs off
// loopback, private and link-local networks.
package netguard

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"
)

// ErrBlockedAddress is returned when a dial targets a non-public address.
var ErrBlockedAddress = errors.New("netguard: address is not publicly routable")

// Shared address space (RFC 6598), not covered by netip.Addr.IsPrivate.
var sharedSpace = netip.MustParsePrefix("100.64.0.0/10")

// Allowed reports whether ip is a public unicast address.
func Allowed(ip netip.Addr) bool {
	ip = ip.Unmap()
	if !ip.IsValid() || !ip.IsGlobalUnicast() {
		return false
	}
	return !ip.IsPrivate() && !sharedSpace.Contains(ip)
}

// Control is a net.Dialer hook. It sees the resolved address, so a public
// name that resolves to an internal address is refused as well.
func Control(_, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("netguard: %w", err)
	}
	if !Allowed(ap.Addr()) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ap.Addr())
	}
	return nil
}

// Transport returns a transport whose connections go through Control.
// Environment proxies are ignored so the check sees the real destination.
func Transport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = nil
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   Control,
	}
	t.DialContext = dialer.DialContext
	return t
}

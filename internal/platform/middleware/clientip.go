// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/taibuivan/konstra/internal/platform/constants"
	"github.com/taibuivan/konstra/internal/platform/ctxutil"
)

// # Client Address

/*
ClientIP resolves the caller address once per request and stores it in the
context for the logger and the rate limiter.

Description: X-Real-IP and X-Forwarded-For are only read when the socket
peer lies inside one of proxies. X-Forwarded-For is walked from the right and
the first hop outside proxies is the client. With no trusted proxies the
socket address is always used.

Parameters:
  - proxies: []netip.Prefix (reverse proxies allowed to set forwarding headers)

Returns:
  - func(http.Handler) http.Handler
*/
func ClientIP(proxies []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ip := resolveClientIP(request, proxies)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithClientIP(request.Context(), ip)))
		})
	}
}

func resolveClientIP(request *http.Request, proxies []netip.Prefix) string {
	peer := remoteHost(request)
	if !trusted(peer, proxies) {
		return peer
	}

	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); validIP(ip) {
		return ip
	}

	forwarded := request.Header.Get(constants.HeaderXForwardedFor)
	if forwarded == "" {
		return peer
	}

	hops := strings.Split(forwarded, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if !validIP(hop) {
			return peer
		}
		if !trusted(hop, proxies) {
			return hop
		}
	}

	// Every hop is a proxy of ours.
	return strings.TrimSpace(hops[0])
}

func trusted(ip string, proxies []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func validIP(ip string) bool {
	_, err := netip.ParseAddr(ip)
	return err == nil
}

func remoteHost(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

// clientAddress reads the address stored by [ClientIP], falling back to the socket peer.
func clientAddress(request *http.Request) string {
	if ip := ctxutil.GetClientIP(request.Context()); ip != "" {
		return ip
	}
	return remoteHost(request)
}

// Package net provides networking utilities for grabarr.
package net

import (
	"net"
	"net/url"
	"strings"

	"grabarr/internal/domain/logger"
)

// IsPrivateNetwork returns true if the URL or host points at a loopback, LAN or link-local address.
func IsPrivateNetwork(host string) bool {
	h := hostOnly(host)
	if h == "" {
		return false
	}
	if strings.EqualFold(h, "localhost") || strings.HasSuffix(strings.ToLower(h), ".localhost") {
		return true
	}

	if ip := net.ParseIP(h); ip != nil {
		return isPrivateIP(ip)
	}
	return isPrivateNetworkFallback(h)
}

// hostOnly strips scheme, port and path from host.
func hostOnly(host string) string {
	if u, err := url.Parse(host); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.Trim(host, "[]")
}

// isPrivateNetworkFallback resolves the hostname and checks every address.
func isPrivateNetworkFallback(h string) bool {
	ips, err := net.LookupIP(h)
	if err != nil {
		logger.Pl.D(1, "Failed to resolve hostname %q: %v", h, err)
		return false
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			logger.Pl.D(1, "Host %q resolved to private IP address %q", h, ip)
			return true
		}
	}
	return false
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

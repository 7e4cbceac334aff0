package handler

import (
	"errors"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseProxy(entry string) (*net.IPNet, error) {
	if strings.Contains(entry, "/") {
		_, ipNet, err := net.ParseCIDR(entry)
		return ipNet, err
	}

	ip := net.ParseIP(entry)
	if ip == nil {
		return nil, errors.New("not an IP or CIDR")
	}
	bits := 8 * net.IPv6len
	if v4 := ip.To4(); v4 != nil {
		ip, bits = v4, 8*net.IPv4len
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}

// trustedProxies is the validated list handed to gin for ClientIP. nil
// makes gin ignore forwarding headers entirely.
func (h *Handler) trustedProxies() []string {
	if len(h.proxies) == 0 {
		return nil
	}

	proxies := make([]string, 0, len(h.proxies))
	for _, ipNet := range h.proxies {
		proxies = append(proxies, ipNet.String())
	}
	return proxies
}

func (h *Handler) fromTrustedProxy(c *gin.Context) bool {
	ip := net.ParseIP(c.RemoteIP())
	if ip == nil {
		return false
	}

	for _, ipNet := range h.proxies {
		if ipNet.Contains(ip) {
			return true
		}
	}
	return false
}

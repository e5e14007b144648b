package remote

import (
	"fmt"
	"net"
	"strings"
)

// LANAddress returns the local address a phone on the same network
// should dial, preferring private-range interface addresses over
// whatever the default route reports.
func LANAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}

	var fallback string
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP.To4()
		if ip == nil || ip.IsLoopback() {
			continue
		}
		s := ip.String()
		if strings.HasPrefix(s, "192.168.") || strings.HasPrefix(s, "10.") || strings.HasPrefix(s, "172.") {
			return s
		}
		if fallback == "" {
			fallback = s
		}
	}
	if fallback != "" {
		return fallback
	}
	return "127.0.0.1"
}

// ConnectionURL builds the URL shown to the user (and encoded in the
// QR code) for the bridge listening on port.
func ConnectionURL(port int) string {
	return fmt.Sprintf("http://%s:%d", LANAddress(), port)
}

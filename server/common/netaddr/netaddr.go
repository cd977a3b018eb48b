package netaddr

import "net"

const fallbackHost = "localhost"

// LocalIPv4 returns the first non-loopback IPv4 address reported by the
// host's interfaces so generated URLs are reachable from other devices on
// the local network. It reads interface state on every call and falls back
// to "localhost" when no usable address exists.
func LocalIPv4() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return fallbackHost
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if v4 := ip.To4(); v4 != nil {
				return v4.String()
			}
		}
	}
	return fallbackHost
}

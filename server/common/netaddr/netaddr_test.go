package netaddr

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalIPv4(t *testing.T) {
	got := LocalIPv4()
	if got == "localhost" {
		return // no usable interface on this host, fallback is correct
	}
	ip := net.ParseIP(got)
	assert.NotNil(t, ip, "expected a parseable address, got %q", got)
	assert.NotNil(t, ip.To4())
	assert.False(t, ip.IsLoopback())
}

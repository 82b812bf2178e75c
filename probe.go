package ldappool

import (
	"context"
	"net"
	"strconv"
	"time"
)

// tcpProbe implements SocketProbe with a plain TCP connect.
//
// It holds at most one open connection, from Connect until Close, so a single tcpProbe
// must not be shared between concurrent callers.
type tcpProbe struct {
	// port is used for hosts that don't carry one (e.g. "dc1.example.com")
	port int

	// dialer carries the connect timeout, reused across probes
	dialer *net.Dialer

	// conn is the connection opened by the last successful Connect
	conn net.Conn
}

func newTCPProbe(port int, timeout time.Duration) *tcpProbe {
	return &tcpProbe{
		port: port,
		dialer: &net.Dialer{
			Timeout: timeout,
		},
	}
}

// Connect dials host over TCP. A connection left over from an earlier Connect is closed
// first.
func (t *tcpProbe) Connect(ctx context.Context, host string) bool {
	t.Close()

	conn, err := t.dialer.DialContext(ctx, "tcp", probeAddress(host, t.port))
	if err != nil {
		return false
	}

	t.conn = conn
	return true
}

// Close closes the connection opened by Connect, if any.
func (t *tcpProbe) Close() {
	if t.conn == nil {
		return
	}
	// Nothing useful to do with a close error on a connection we only opened to see
	// if it would open.
	_ = t.conn.Close()
	t.conn = nil
}

// probeAddress appends the default port to host unless it already has one. Bare IPv6
// literals get bracketed by net.JoinHostPort.
func probeAddress(host string, port int) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

package utils

import (
	"context"
	"net"
	"time"
)

// DialHandshake connects to address and bounds every read and write on the connection by timeout and by ctx, so a
// server that accepts but never speaks cannot stall the protocol handshake. Call done once the handshake succeeded
// to lift the bound; the connection is then left without a deadline.
func DialHandshake(ctx context.Context, address string, timeout time.Duration) (conn net.Conn, done func(), err error) {
	dialer := &net.Dialer{Timeout: timeout}
	conn, err = dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, nil, err
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	// a cancelled ctx expires the deadline immediately, unblocking a pending read
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})

	return conn, func() {
		if stop() {
			_ = conn.SetDeadline(time.Time{})
		}
	}, nil
}

// Package helper wires group declarations to a host. It plays the role of the
// plugin bootstrap: callers queue registration callbacks (or plain groups),
// then call Initialize once the host is known to be ready.
//
// The host is a capability supplied through WithHost. When no host is
// configured, Initialize is a no-op: nothing is registered and no error is
// returned, mirroring a WordPress install where ACF is not active.
//
// Field defaults are built once per Initialize call from the configured
// filters and passed explicitly to every group registration.
package helper

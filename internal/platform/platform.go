// Package platform declares the narrow interfaces the power-sequencing
// engine uses to reach the host platform: named clock lookup, power-domain
// attachment and device links. Implementations live with the platform glue
// (or in internal/sim for emulated hardware); the engine never discovers
// resources itself.
package platform

import "errors"

var (
	// ErrNotFound reports that a named clock or power domain does not
	// exist on this platform.
	ErrNotFound = errors.New("platform: resource not found")

	// ErrHandshakeTimeout reports that a power-control status bit never
	// reached the expected value within the poll budget.
	ErrHandshakeTimeout = errors.New("platform: power handshake timeout")

	// ErrLinkFailed reports that a device link to a power domain could
	// not be created.
	ErrLinkFailed = errors.New("platform: device link creation failed")

	// ErrUnsupported reports that a backend is not available on this
	// platform.
	ErrUnsupported = errors.New("platform: unsupported on this platform")
)

// Clock is a handle to one named clock line. A clock is looked up once at
// attach time and enabled/disabled many times across power transitions.
type Clock interface {
	Enable() error
	// Disable gates the clock. Disabling never fails on this hardware.
	Disable()
}

// Domain is a handle to an OS-managed power domain. The usage counter
// behind it belongs to the platform; the engine only acquires and releases.
type Domain interface {
	// Acquire increments the domain's usage count and blocks until the
	// domain reports active.
	Acquire() error
	// Release decrements the usage count.
	Release() error
	// Detach drops the handle itself, undoing the attach. The domain is
	// powered down if this was the last consumer.
	Detach()
}

// LinkFlags control the behavior of a device link to a power domain.
type LinkFlags uint32

const (
	// LinkStateless marks the link as not persisted across rebinds.
	LinkStateless LinkFlags = 1 << iota
	// LinkPMRuntime ties the domain's runtime state to the device's.
	LinkPMRuntime
	// LinkRPMActive forces the domain active when the link is created.
	LinkRPMActive
)

// Link is an established device/domain lifetime link.
type Link interface {
	// Close severs the link.
	Close()
}

// Device is the resource-acquisition collaborator. All calls either succeed
// with a valid handle or fail; a returned handle is never half-initialized.
type Device interface {
	LookupClock(name string) (Clock, error)
	AttachDomain(name string) (Domain, error)
	LinkDomain(d Domain, flags LinkFlags) (Link, error)
}

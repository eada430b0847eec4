// Package entities defines the core data model of the host link: the
// outbound message envelope and the link configuration. These types carry no
// behavior beyond validation; the transport semantics live in hostlink.
package entities

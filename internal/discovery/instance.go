package discovery

import (
	"fmt"
	"time"
)

// Instance represents a discovered Ecume API server on the network
type Instance struct {
	// Name is the advertised instance name (e.g., "ecume-staging")
	Name string

	// Hostname is the mDNS hostname (e.g., "ecume-api-01.local")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.40")
	IP string

	// Port is the HTTP API port (typically 5000)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "env=staging", "version=2.3.1"
	Metadata map[string]string

	// DiscoveredAt is when the instance was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the instance
func (i *Instance) String() string {
	return fmt.Sprintf("Ecume API %s (%s) at %s:%d", i.Name, i.Hostname, i.IP, i.Port)
}

// BaseURL returns the HTTP base URL for the API instance
func (i *Instance) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", i.IP, i.Port)
}

// Environment returns the instance's advertised environment label, or
// "unknown" when the TXT records did not carry one
func (i *Instance) Environment() string {
	if env := i.GetMetadata("env"); env != "" {
		return env
	}
	return "unknown"
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (i *Instance) GetMetadata(key string) string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata[key]
}

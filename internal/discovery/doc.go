// Package discovery locates Ecume API servers on the local network via
// multicast DNS (mDNS).
//
// API servers advertise themselves using the "_ecume-api._tcp" service
// type. A scan broadcasts mDNS queries, collects advertisements until the
// timeout elapses, and returns one Instance per responding server with its
// address, port, and TXT-record metadata (environment, version).
//
// # Usage Example
//
//	instances, err := discovery.ScanInstances(5 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, instance := range instances {
//	    fmt.Printf("Found: %s (%s)\n", instance.BaseURL(), instance.Environment())
//	}
//
// # Network Requirements
//
// Requires multicast support on the network interface and a firewall that
// allows mDNS (UDP port 5353). Servers must be on the same network segment.
package discovery

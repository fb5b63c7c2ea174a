// ABOUTME: Version constants for the cadenza client
// ABOUTME: Identifies the product in logs and HTTP headers
package version

const (
	// Version is the current release version.
	Version = "0.1.0"

	// Product is the product name.
	Product = "Cadenza Studio"

	// Manufacturer identifies the vendor.
	Manufacturer = "Cadenza"
)

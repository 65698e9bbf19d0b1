package anonymize

import "strings"

// Value applies the key-aware anonymization policy to one scalar string and
// returns the replacement. Rule order matters: the first rule that applies
// wins. The mix of exact-equality and substring key matching mirrors the
// field names seen in captured device trees and must stay as-is; unifying it
// would change which fields get anonymized.
func (a *Anonymizer) Value(key, value string) string {
	if value == "" {
		return value
	}
	k := strings.ToLower(key)

	// High-priority exclusions.
	if strings.Contains(k, "version") || strings.Contains(k, "ssid_reference") {
		return value
	}
	if strings.Contains(k, "prefix") && strings.Contains(value, ":") {
		// Almost certainly an IPv6 prefix notation; structurally significant.
		return value
	}

	// Key-specific replacements.
	if k == "serial_number" {
		return a.fakeSerial
	}
	if strings.Contains(k, "password") || strings.Contains(k, "passphrase") {
		// Never memoized: two identical passwords may anonymize
		// differently, which keeps re-identification risk low.
		return a.randomPassword()
	}
	if k == "ssid" {
		return a.replaceSSID(value)
	}
	if k == "bssid" {
		// Structurally a MAC, but scanned rather than substituted whole
		// to tolerate delimiter variance.
		return a.ScanMACs(value)
	}

	// Content-based scan for everything else.
	value = a.ScanMACs(value)
	value = a.ScanIPv4s(value)
	return a.ScanIPv6s(value)
}

func (a *Anonymizer) replaceSSID(ssid string) string {
	if r, ok := a.store.Lookup(ssid); ok {
		return r
	}
	return a.store.Remember(ssid, ssidPlaceholders[a.rand.IntN(len(ssidPlaceholders))])
}

package anonymize

import (
	"regexp"
	"testing"
)

func TestValue_KeyExclusions(t *testing.T) {
	a := New()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"version key", "software_version", "1.0.3"},
		{"version key mixed case", "HardwareVersion", "2.14"},
		{"ssid_reference key", "primary_ssid_reference", "Device/WiFi/SSIDs/SSID[@uid='1']"},
		{"prefix key with colon", "i_pv6_prefix", "2001:db8:1234::/64"},
		{"empty string", "mac_address", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Value(tt.key, tt.value); got != tt.value {
				t.Errorf("Value(%q, %q) = %q, want unchanged", tt.key, tt.value, got)
			}
		})
	}
}

func TestValue_PrefixKeyWithoutColonIsScanned(t *testing.T) {
	// "prefix" only shields IPv6-prefix-looking values; a plain IPv4 under
	// a prefix-ish key still gets scanned.
	a := New()
	if got := a.Value("prefix_thing", "8.8.8.8"); got == "8.8.8.8" {
		t.Error("Expected IPv4 under non-colon prefix key to be anonymized")
	}
}

func TestValue_SerialNumberExactKeyOnly(t *testing.T) {
	a := New()

	got := a.Value("serial_number", "JX9274619283")
	if got != a.fakeSerial {
		t.Errorf("serial_number = %q, want the run's fake serial %q", got, a.fakeSerial)
	}

	// Containment is not enough for this rule; only the exact key matches.
	if got := a.Value("board_serial_number_extra", "plainvalue"); got != "plainvalue" {
		t.Errorf("Non-exact serial key rewrote value to %q", got)
	}
}

func TestValue_PasswordNotMemoized(t *testing.T) {
	a := New()

	alnum := regexp.MustCompile(`^[A-Za-z0-9]{12}$`)
	for _, key := range []string{"password", "admin_password", "wpa_passphrase"} {
		got := a.Value(key, "hunter2")
		if !alnum.MatchString(got) {
			t.Errorf("Value(%q) = %q, want 12 alphanumeric chars", key, got)
		}
	}

	// The original must never enter the store: identical passwords may
	// anonymize differently and must not be re-identifiable.
	if _, ok := a.store.Lookup("hunter2"); ok {
		t.Error("Password original was memoized in the replacement store")
	}
}

func TestValue_SSIDPlaceholder(t *testing.T) {
	a := New()

	got := a.Value("ssid", "HomeNet-5G")
	found := false
	for _, p := range ssidPlaceholders {
		if got == p {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Value(ssid) = %q, not in the placeholder set", got)
	}

	if again := a.Value("ssid", "HomeNet-5G"); again != got {
		t.Errorf("Same SSID must map to same placeholder: %q vs %q", got, again)
	}
}

func TestValue_BSSIDSharesStoreWithMACScan(t *testing.T) {
	a := New()

	bssid := a.Value("bssid", "00:11:22:33:44:55")
	mac := a.Value("mac_address", "00:11:22:33:44:55")
	if bssid != mac {
		t.Errorf("bssid and mac_address with the same original diverged: %q vs %q", bssid, mac)
	}
}

func TestValue_ContentScanFallback(t *testing.T) {
	a := New()

	got := a.Value("remote_endpoint", "connected to 8.8.4.4 via aa:bb:cc:dd:ee:ff")
	if got == "connected to 8.8.4.4 via aa:bb:cc:dd:ee:ff" {
		t.Error("Fallback scan left both address forms untouched")
	}
	if regexp.MustCompile(`8\.8\.4\.4`).MatchString(got) {
		t.Errorf("IPv4 survived the fallback scan: %q", got)
	}

	// Plain prose without addresses passes through.
	if got := a.Value("description", "Cable modem living room"); got != "Cable modem living room" {
		t.Errorf("Plain prose rewritten to %q", got)
	}
}

package anonymize

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestDocument_EndToEnd(t *testing.T) {
	input := `{"status": {"ssid": "HomeNet-5G", "bssid": "00:11:22:33:44:55"}, "mac_address": "00:11:22:33:44:55", "version": "1.0.3"}`

	out, err := New().Document([]byte(input))
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	doc := gjson.ParseBytes(out)

	if v := doc.Get("version").String(); v != "1.0.3" {
		t.Errorf("version = %q, want 1.0.3 unchanged", v)
	}

	ssid := doc.Get("status.ssid").String()
	found := false
	for _, p := range ssidPlaceholders {
		if ssid == p {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("ssid = %q, not from the placeholder set", ssid)
	}

	bssid := doc.Get("status.bssid").String()
	mac := doc.Get("mac_address").String()
	if bssid != mac {
		t.Errorf("Same original MAC diverged: bssid %q, mac_address %q", bssid, mac)
	}
	if !strings.HasPrefix(mac, "00:11:22:") {
		t.Errorf("OUI not preserved: %q", mac)
	}
}

func TestDocument_StructuralFidelity(t *testing.T) {
	input := `{"z_first": 1, "a_second": {"list": ["8.8.8.8", 42, true, null]}, "m_third": 7.50, "empty": {}, "flag": false}`

	out, err := New().Document([]byte(input))
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	doc := gjson.ParseBytes(out)

	// Key order is preserved, not sorted.
	var keys []string
	doc.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	want := []string{"z_first", "a_second", "m_third", "empty", "flag"}
	if len(keys) != len(want) {
		t.Fatalf("Got %d top-level keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Key %d = %q, want %q", i, keys[i], want[i])
		}
	}

	// Array shape preserved; non-string scalars byte-identical.
	list := doc.Get("a_second.list").Array()
	if len(list) != 4 {
		t.Fatalf("Array length %d, want 4", len(list))
	}
	if list[1].Raw != "42" || list[2].Raw != "true" || list[3].Raw != "null" {
		t.Errorf("Non-string array scalars changed: %q %q %q", list[1].Raw, list[2].Raw, list[3].Raw)
	}
	if doc.Get("m_third").Raw != "7.50" {
		t.Errorf("Number formatting changed: %q, want 7.50", doc.Get("m_third").Raw)
	}

	// Array string elements still get the content scan (no key context).
	if v := list[0].String(); v == "8.8.8.8" {
		t.Error("IPv4 inside array survived")
	}
}

func TestDocument_ScalarRoot(t *testing.T) {
	out, err := New().Document([]byte(`"8.8.8.8"`))
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	if got := gjson.ParseBytes(out).String(); got == "8.8.8.8" {
		t.Error("Root scalar was not scanned")
	}
}

func TestDocument_Malformed(t *testing.T) {
	if _, err := New().Document([]byte(`{"unterminated": `)); err != ErrMalformedInput {
		t.Errorf("Expected ErrMalformedInput, got %v", err)
	}
}

func TestDocument_ConsistencyAcrossDocument(t *testing.T) {
	input := `{"wifi": {"ssid": "Net-A"}, "scan_results": [{"ssid": "Net-A"}], "lan": "192.0.2.10", "wan": "192.0.2.10"}`

	out, err := New().Document([]byte(input))
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	doc := gjson.ParseBytes(out)

	if a, b := doc.Get("wifi.ssid").String(), doc.Get("scan_results.0.ssid").String(); a != b {
		t.Errorf("Same SSID diverged across the document: %q vs %q", a, b)
	}
	if a, b := doc.Get("lan").String(), doc.Get("wan").String(); a != b {
		t.Errorf("Same IP diverged across the document: %q vs %q", a, b)
	}
}

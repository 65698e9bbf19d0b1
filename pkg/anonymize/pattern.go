package anonymize

import (
	"fmt"
	"net/netip"
	"regexp"
	"strings"
)

// The scanners run over free-form text and rewrite every non-overlapping
// match left to right. Order matters: MAC and IPv6 textual shapes overlap,
// so the MAC scanner must claim its matches before the IPv6 scanner runs.
var (
	// RE2 has no backreferences, so the consistent-delimiter requirement
	// is spelled out as two alternatives.
	macPattern  = regexp.MustCompile(`\b(?:[0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}\b|\b(?:[0-9A-Fa-f]{2}-){5}[0-9A-Fa-f]{2}\b`)
	ipv4Pattern = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	// Deliberately loose: anything colon-grouped that fails address
	// validation below is left untouched.
	ipv6Pattern = regexp.MustCompile(`\b(?:[0-9A-Fa-f]{1,4}:){1,7}[0-9A-Fa-f]{1,4}\b`)
)

// ScanMACs rewrites every MAC-shaped substring in s. The vendor prefix (OUI)
// and the delimiter survive; the last three octets are randomized and the
// whole address is re-emitted in uppercase.
func (a *Anonymizer) ScanMACs(s string) string {
	return macPattern.ReplaceAllStringFunc(s, a.replaceMAC)
}

func (a *Anonymizer) replaceMAC(mac string) string {
	if r, ok := a.store.Lookup(mac); ok {
		return r
	}
	sep := string(mac[2])
	parts := strings.Split(mac, sep)
	for i := 3; i < len(parts); i++ {
		parts[i] = fmt.Sprintf("%02x", a.rand.IntN(256))
	}
	return a.store.Remember(mac, strings.ToUpper(strings.Join(parts, sep)))
}

// ScanIPv4s rewrites every IPv4-shaped substring in s. Loopback, unspecified
// and 255.* addresses are structurally significant and pass through; private
// 192.168.x.y addresses keep their subnet; everything else moves into a
// synthetic 10.0.0.0/8 address that preserves a meaningful last octet.
func (a *Anonymizer) ScanIPv4s(s string) string {
	return ipv4Pattern.ReplaceAllStringFunc(s, a.replaceIPv4)
}

func (a *Anonymizer) replaceIPv4(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return ip // out-of-range octet or similar: not an address
	}
	if addr.IsLoopback() || addr.IsUnspecified() || strings.HasPrefix(ip, "255.") {
		return ip
	}
	if r, ok := a.store.Lookup(ip); ok {
		return r
	}
	o := addr.As4()

	var out string
	if o[0] == 192 && o[1] == 168 {
		if o[3] > 1 && o[3] < 255 {
			out = fmt.Sprintf("192.168.%d.%d", o[2], 2+a.rand.IntN(253))
		} else {
			// .0, .1 and .255 carry subnet meaning; keep intact.
			out = ip
		}
	} else {
		last := int(o[3])
		if last != 0 && last != 1 && last != 255 {
			last = 2 + a.rand.IntN(253)
		}
		out = fmt.Sprintf("10.%d.%d.%d", a.rand.IntN(256), a.rand.IntN(256), last)
	}
	return a.store.Remember(ip, out)
}

// ScanIPv6s rewrites every valid IPv6 address in s. The first group is kept
// verbatim; 0000 and 0001 groups are preserved (they usually carry subnet or
// well-known-address meaning); all other groups are randomized. The result is
// recomposed into canonical, possibly compressed, form.
func (a *Anonymizer) ScanIPv6s(s string) string {
	return ipv6Pattern.ReplaceAllStringFunc(s, a.replaceIPv6)
}

func (a *Anonymizer) replaceIPv6(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is6() || addr.Is4In6() {
		// MAC-shaped leftovers and DUIDs land here and stay unchanged.
		return ip
	}
	if r, ok := a.store.Lookup(ip); ok {
		return r
	}

	raw := addr.As16()
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = fmt.Sprintf("%04x", uint16(raw[2*i])<<8|uint16(raw[2*i+1]))
	}
	for i := 1; i < len(groups); i++ {
		if groups[i] == "0000" || groups[i] == "0001" {
			continue
		}
		groups[i] = fmt.Sprintf("%04x", a.rand.IntN(1<<16))
	}

	rebuilt, err := netip.ParseAddr(strings.Join(groups, ":"))
	if err != nil {
		return ip
	}
	return a.store.Remember(ip, rebuilt.String())
}

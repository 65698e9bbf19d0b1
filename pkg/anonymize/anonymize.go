// Package anonymize rewrites personally-identifying fields (serial numbers,
// MAC/IP addresses, Wi-Fi names, passwords) in captured modem device-state
// JSON, so real captures can be shared as test snapshots.
package anonymize

const passwordLength = 12

// ssidPlaceholders is the fixed set of placeholder network names. Because the
// set is small, two distinct original SSIDs may receive the same placeholder
// in one run; that is acceptable for this domain.
var ssidPlaceholders = []string{
	"Tell my WiFi love her",
	"Pretty Fly for a Wi-Fi",
	"The LAN Before Time",
	"Searching...",
	"Get off my LAN",
}

// Anonymizer holds the state of a single anonymization run: the replacement
// store, the random source, and the run's one fake serial number. Create a
// fresh Anonymizer per run; sharing one across documents is a deliberate
// caller choice for cross-document consistency.
type Anonymizer struct {
	store      *ReplacementStore
	rand       Source
	fakeSerial string
}

func New() *Anonymizer {
	return NewWithSource(NewSource())
}

// NewWithSource creates an Anonymizer drawing randomness from src.
func NewWithSource(src Source) *Anonymizer {
	a := &Anonymizer{
		store: NewReplacementStore(),
		rand:  src,
	}
	a.fakeSerial = a.newFakeSerial()
	return a
}

// newFakeSerial builds the run's single fake serial number: a Sagemcom-style
// "JW" prefix followed by 12 random digits. Every serial_number field in the
// run collapses to this one value, whatever its original was.
func (a *Anonymizer) newFakeSerial() string {
	digits := make([]byte, 12)
	for i := range digits {
		digits[i] = byte('0' + a.rand.IntN(10))
	}
	return "JW" + string(digits)
}

// randomPassword draws a fresh 12-character alphanumeric string.
func (a *Anonymizer) randomPassword() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, passwordLength)
	for i := range b {
		b[i] = alphabet[a.rand.IntN(len(alphabet))]
	}
	return string(b)
}

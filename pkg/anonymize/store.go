package anonymize

// ReplacementStore memoizes original -> replacement mappings so that the same
// original value always anonymizes to the same replacement within one run.
// First-seen wins and the store is never cleared mid-run. It is an explicit
// object owned by one Anonymizer, never process-wide state, so independent
// runs cannot contaminate each other.
type ReplacementStore struct {
	replacements map[string]string
}

func NewReplacementStore() *ReplacementStore {
	return &ReplacementStore{replacements: make(map[string]string)}
}

// Lookup returns the stored replacement for original, if any.
func (s *ReplacementStore) Lookup(original string) (string, bool) {
	r, ok := s.replacements[original]
	return r, ok
}

// Remember stores replacement for original and returns it. If original was
// already mapped, the existing replacement wins.
func (s *ReplacementStore) Remember(original, replacement string) string {
	if existing, ok := s.replacements[original]; ok {
		return existing
	}
	s.replacements[original] = replacement
	return replacement
}

// Len reports how many distinct originals have been mapped.
func (s *ReplacementStore) Len() int {
	return len(s.replacements)
}

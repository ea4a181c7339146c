package world

import "encoding/json"

// Marshal encodes the store to its save-file byte form (§9 design note:
// save/restore is a byte encoding of the store's data, never of code,
// which is exactly what keeping ActionRef a catalogue-id pointer rather
// than a function pointer buys here).
func (s *Store) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a store previously produced by Marshal. nextAcquireSeq
// isn't itself serialised (it is a store-internal counter, not catalogue
// or session-visible state), so it is reconstructed here from the highest
// AcquireSeq already recorded on any object, keeping a restored store's
// future acquisitions ordered correctly against its past ones.
func Unmarshal(data []byte) (*Store, error) {
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	for _, o := range s.Objects {
		if o.AcquireSeq > s.nextAcquireSeq {
			s.nextAcquireSeq = o.AcquireSeq
		}
	}
	return &s, nil
}

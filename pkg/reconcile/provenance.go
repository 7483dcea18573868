package reconcile

// Provenance records, for one reconciled record, which source supplied each
// resolved field. Fields that resolved to null have no entry.
type Provenance map[string]SourceName

// ProvenanceMap tracks provenance for every reconciled record, keyed by the
// record's identifier value.
type ProvenanceMap map[string]Provenance

// track records the winning source for a field. No-op when disabled or when
// no source supplied a value.
func (pm ProvenanceMap) track(id, field string, source SourceName) {
	if pm == nil || source == "" {
		return
	}
	p, ok := pm[id]
	if !ok {
		p = make(Provenance)
		pm[id] = p
	}
	p[field] = source
}

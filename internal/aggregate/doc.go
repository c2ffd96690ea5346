// Package aggregate collects section drafts into the output document.
//
// An Aggregator is a section.Publisher. Every create or update event
// replaces the stored draft for its section; the document is rendered on
// demand from the latest drafts:
//
//	agg := aggregate.New()
//	for _, s := range section.NewAll(section.Options{Publisher: agg}) {
//		s.Activate()
//	}
//	data, err := agg.JSON()
//
// Sections appear in registry order and fields in draft order. The
// aggregator performs no cross-section validation.
package aggregate

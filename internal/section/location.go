package section

import (
	"math"

	"github.com/anyshake/prisma/internal/field"
)

// LocationDraft is the fallback station position.
type LocationDraft struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" toml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude" toml:"longitude"`
	Elevation float64 `json:"elevation" yaml:"elevation" toml:"elevation"`
}

func defaultLocation() LocationDraft {
	return LocationDraft{
		Latitude:  40.844184,
		Longitude: -73.863995,
		Elevation: 100,
	}
}

// Location controls the location section.
type Location struct {
	controller[LocationDraft]
	mapView MapView
	editors map[string]editor
}

// NewLocation creates an inactive location controller.
func NewLocation(opts Options) *Location {
	opts = opts.withDefaults()
	l := &Location{
		controller: newController[LocationDraft](KeyLocation, opts, nil, nil),
		mapView:    opts.Map,
	}
	l.editors = map[string]editor{
		"latitude":  l.number("Latitude", field.Between(-90, 90), func(d *LocationDraft, v float64) { d.Latitude = v }),
		"longitude": l.number("Longitude", field.Between(-180, 180), func(d *LocationDraft, v float64) { d.Longitude = v }),
		"elevation": l.number("Elevation", field.AtLeast(0), func(d *LocationDraft, v float64) { d.Elevation = v }),
	}
	return l
}

func (l *Location) number(label string, r field.Range, set func(*LocationDraft, float64)) editor {
	return func(raw string) bool {
		v, ok := field.Number(l.notifier, label, raw, r)
		if !ok {
			return false
		}
		l.commit(func(d *LocationDraft) { set(d, v) })
		l.recenter()
		return true
	}
}

func (l *Location) Activate() {
	if l.seed(defaultLocation()) {
		l.recenter()
	}
}

func (l *Location) Fields() []Field {
	return []Field{
		{Name: "latitude", Label: "Latitude", Kind: KindNumber, Help: "-90 to 90"},
		{Name: "longitude", Label: "Longitude", Kind: KindNumber, Help: "-180 to 180"},
		{Name: "elevation", Label: "Elevation (m)", Kind: KindNumber, Help: "Meters above sea level"},
	}
}

func (l *Location) Value(name string) (string, bool) {
	switch name {
	case "latitude":
		return formatNumber(l.draft.Latitude), true
	case "longitude":
		return formatNumber(l.draft.Longitude), true
	case "elevation":
		return formatNumber(l.draft.Elevation), true
	}
	return "", false
}

func (l *Location) Edit(name, raw string) (bool, error) {
	return l.edit(l.editors, name, raw)
}

// PickOnMap takes a map click. Coordinates are rounded to five decimals and
// are trusted as-is, since the map only produces valid positions.
func (l *Location) PickOnMap(latitude, longitude float64) (bool, error) {
	if l.state == StateUninitialized {
		return false, ErrInactive
	}
	l.commit(func(d *LocationDraft) {
		d.Latitude = roundCoordinate(latitude)
		d.Longitude = roundCoordinate(longitude)
	})
	l.recenter()
	return true, nil
}

func (l *Location) recenter() {
	if l.mapView != nil {
		l.mapView.Center(l.draft.Latitude, l.draft.Longitude)
	}
}

func roundCoordinate(v float64) float64 {
	return math.Round(v*100000) / 100000
}

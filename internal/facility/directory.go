package facility

import (
	"sort"

	"github.com/jordtransport/importer/internal/domain"
)

// Directory is the trusted registry of receiving facilities. It is loaded
// once at startup and read-only thereafter, so a single instance can be
// shared across concurrent imports.
type Directory struct {
	entries map[int]domain.Facility
}

// NewDirectory builds a directory from the given facilities. Later entries
// with a duplicate ID overwrite earlier ones.
func NewDirectory(facilities []domain.Facility) *Directory {
	entries := make(map[int]domain.Facility, len(facilities))
	for _, f := range facilities {
		entries[f.ID] = f
	}
	return &Directory{entries: entries}
}

// Default returns the registry shipped with this template version.
func Default() *Directory {
	return NewDirectory([]domain.Facility{
		{ID: 1061, Name: "Gert Svith, Birkesig Grusgrav", Address: "Rugvænget 18, 8444 Grenå"},
		{ID: 1013, Name: "JJ Grus A/S (Kalbygård Grusgrav)", Address: "Hovedvejen 24A, 8670 Låsby"},
		{ID: 1327, Name: "Johs. Sørensen & Sønner A/S, Ren depotjord", Address: "Holmstrupgårdvej 9, 8220 Brabrand"},
		{ID: 2191, Name: "JJ Grus A/S (Ans)", Address: "Søndermarksgade 43, 8643 Ans"},
		{ID: 1901, Name: "EHJ Energi & Miljø A/S - Let forurenet jord", Address: "Hadstenvej 16, 8940 Randers SV"},
	})
}

// Lookup returns the facility registered under id and whether it exists.
func (d *Directory) Lookup(id int) (domain.Facility, bool) {
	f, ok := d.entries[id]
	return f, ok
}

// IDs returns all registered facility IDs in ascending order.
func (d *Directory) IDs() []int {
	ids := make([]int, 0, len(d.entries))
	for id := range d.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of registered facilities.
func (d *Directory) Len() int {
	return len(d.entries)
}

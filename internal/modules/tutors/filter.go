package tutors

import (
	"sort"
	"strings"

	"musicstore/internal/domain"
	"musicstore/internal/pkg/utils"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filter is the tutor search form. Empty strings and "todos" leave a
// dimension unfiltered; nil bounds are unset, which is not the same as 0.
type Filter struct {
	Instrument  string
	Level       string
	Style       string
	Modality    string
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	SortByPrice string
}

// Apply returns the tutors matching f. The input is not modified. Without a
// price sort the original order is kept; with one, ties keep it too.
func Apply(f Filter, tutors []domain.Tutor) []domain.Tutor {
	search := strings.TrimSpace(f.Search)

	out := make([]domain.Tutor, 0, len(tutors))
	for _, t := range tutors {
		if !matchesSet(f.Instrument, t.Instruments) ||
			!matchesSet(f.Level, t.Levels) ||
			!matchesSet(f.Style, t.Styles) ||
			!matchesSet(f.Modality, t.Modalities) {
			continue
		}
		if f.MinPrice != nil && t.HourlyRate < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && t.HourlyRate > *f.MaxPrice {
			continue
		}
		if search != "" &&
			!utils.ContainsFold(t.Name, search) &&
			!utils.ContainsFold(t.ShortDescription, search) &&
			!utils.ContainsFold(t.Description, search) {
			continue
		}
		out = append(out, t)
	}

	switch f.SortByPrice {
	case SortAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].HourlyRate < out[j].HourlyRate })
	case SortDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].HourlyRate > out[j].HourlyRate })
	}
	return out
}

func matchesSet(want string, have []string) bool {
	if want == "" || want == domain.FilterAll {
		return true
	}
	return utils.HasString(have, want)
}

// Facets lists the distinct values present in the catalog, in first-seen
// order, to populate filter menus.
type Facets struct {
	Instruments []string `json:"instruments"`
	Levels      []string `json:"levels"`
	Styles      []string `json:"styles"`
	Modalities  []string `json:"modalities"`
}

func BuildFacets(tutors []domain.Tutor) Facets {
	f := Facets{
		Instruments: []string{},
		Levels:      []string{},
		Styles:      []string{},
		Modalities:  []string{},
	}
	for _, t := range tutors {
		f.Instruments = appendNew(f.Instruments, t.Instruments)
		f.Levels = appendNew(f.Levels, t.Levels)
		f.Styles = appendNew(f.Styles, t.Styles)
		f.Modalities = appendNew(f.Modalities, t.Modalities)
	}
	return f
}

func appendNew(dst, src []string) []string {
	for _, s := range src {
		if !utils.HasString(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

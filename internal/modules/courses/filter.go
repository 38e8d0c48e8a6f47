package courses

import (
	"sort"
	"strings"

	"musicstore/internal/domain"
	"musicstore/internal/pkg/utils"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

type Filter struct {
	Difficulty domain.Difficulty
	Modality   string
	TutorID    string
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
}

func Apply(f Filter, courses []domain.Course) []domain.Course {
	search := strings.TrimSpace(f.Search)

	out := make([]domain.Course, 0, len(courses))
	for _, c := range courses {
		if f.Difficulty != "" && f.Difficulty != domain.FilterAll && c.Difficulty != f.Difficulty {
			continue
		}
		if f.Modality != "" && f.Modality != domain.FilterAll && !utils.HasString(c.Modalities, f.Modality) {
			continue
		}
		if f.TutorID != "" && c.TutorID != f.TutorID {
			continue
		}
		if f.MinPrice != nil && c.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && c.Price > *f.MaxPrice {
			continue
		}
		if search != "" &&
			!utils.ContainsFold(c.Title, search) &&
			!utils.ContainsFold(c.Description, search) &&
			!utils.ContainsFold(c.TutorName, search) {
			continue
		}
		out = append(out, c)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

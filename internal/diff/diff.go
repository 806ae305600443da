// Package diff computes survey offer deltas between two snapshots.
package diff

import "surveysync/internal/models"

// Compute returns the offers added, updated and removed going from old to
// next. Added and updated follow the order of next, removed follows old.
// When an id occurs more than once only its first occurrence counts.
func Compute(old, next []models.SurveyOffer) models.SurveysChange {
	change := models.SurveysChange{
		Added:   make([]models.SurveyOffer, 0),
		Updated: make([]models.SurveyOffer, 0),
		Removed: make([]models.SurveyOffer, 0),
	}

	previous := index(old)
	seen := make(map[string]struct{}, len(next))
	for _, offer := range next {
		if _, dup := seen[offer.ID]; dup {
			continue
		}
		seen[offer.ID] = struct{}{}

		prev, ok := previous[offer.ID]
		switch {
		case !ok:
			change.Added = append(change.Added, offer)
		case !prev.Equal(offer):
			change.Updated = append(change.Updated, offer)
		}
	}

	removed := make(map[string]struct{})
	for _, offer := range old {
		if _, ok := seen[offer.ID]; ok {
			continue
		}
		if _, dup := removed[offer.ID]; dup {
			continue
		}
		removed[offer.ID] = struct{}{}
		change.Removed = append(change.Removed, offer)
	}
	return change
}

func index(offers []models.SurveyOffer) map[string]models.SurveyOffer {
	m := make(map[string]models.SurveyOffer, len(offers))
	for _, o := range offers {
		if _, ok := m[o.ID]; !ok {
			m[o.ID] = o
		}
	}
	return m
}

package diff

import (
	"fmt"
	"math/rand"
	"testing"

	"surveysync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offer(id, payout string) models.SurveyOffer {
	return models.SurveyOffer{ID: id, Payout: payout, LOI: 5, Type: "survey"}
}

func ids(offers []models.SurveyOffer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.ID)
	}
	return out
}

func TestCompute_EmptyToOffers(t *testing.T) {
	x, y := offer("x", "1"), offer("y", "1")

	change := Compute(nil, []models.SurveyOffer{x, y})

	assert.Equal(t, []models.SurveyOffer{x, y}, change.Added)
	assert.Empty(t, change.Updated)
	assert.Empty(t, change.Removed)
}

func TestCompute_UpdatedPayout(t *testing.T) {
	old := []models.SurveyOffer{offer("x", "1"), offer("y", "1")}
	next := []models.SurveyOffer{offer("x", "2"), offer("y", "1")}

	change := Compute(old, next)

	assert.Empty(t, change.Added)
	require.Len(t, change.Updated, 1)
	assert.Equal(t, "2", change.Updated[0].Payout)
	assert.Empty(t, change.Removed)
}

func TestCompute_Removed(t *testing.T) {
	x, y := offer("x", "1"), offer("y", "1")

	change := Compute([]models.SurveyOffer{x, y}, []models.SurveyOffer{y})

	assert.Empty(t, change.Added)
	assert.Empty(t, change.Updated)
	assert.Equal(t, []models.SurveyOffer{x}, change.Removed)
}

func TestCompute_SameSnapshotIsEmpty(t *testing.T) {
	s := []models.SurveyOffer{offer("a", "1"), offer("b", "2"), offer("c", "3")}
	assert.True(t, Compute(s, s).Empty())
	assert.True(t, Compute(nil, nil).Empty())
}

func TestCompute_Ordering(t *testing.T) {
	old := []models.SurveyOffer{offer("r2", "1"), offer("u1", "1"), offer("r1", "1"), offer("u2", "1")}
	next := []models.SurveyOffer{offer("a2", "1"), offer("u2", "9"), offer("a1", "1"), offer("u1", "9")}

	change := Compute(old, next)

	assert.Equal(t, []string{"a2", "a1"}, ids(change.Added))
	assert.Equal(t, []string{"u2", "u1"}, ids(change.Updated))
	assert.Equal(t, []string{"r2", "r1"}, ids(change.Removed))
}

func TestCompute_AnyFieldCountsAsUpdate(t *testing.T) {
	base := offer("x", "1")
	priority := base
	priority.Top = 1
	external := base
	external.OpenExternally = true
	extra := base
	extra.Additional = map[string]string{"k": "v"}
	original := base
	was := "0.5"
	original.PayoutOriginal = &was

	for name, changed := range map[string]models.SurveyOffer{
		"top": priority, "external": external, "additional": extra, "payout_original": original,
	} {
		t.Run(name, func(t *testing.T) {
			change := Compute([]models.SurveyOffer{base}, []models.SurveyOffer{changed})
			assert.Len(t, change.Updated, 1)
		})
	}
}

func TestCompute_DuplicateIDsCountOnce(t *testing.T) {
	old := []models.SurveyOffer{offer("r", "1"), offer("r", "1")}
	next := []models.SurveyOffer{offer("a", "1"), offer("a", "2")}

	change := Compute(old, next)

	assert.Equal(t, []string{"a"}, ids(change.Added))
	assert.Equal(t, "1", change.Added[0].Payout)
	assert.Equal(t, []string{"r"}, ids(change.Removed))
}

func TestCompute_DoesNotModifyInputs(t *testing.T) {
	old := []models.SurveyOffer{offer("x", "1"), offer("y", "1")}
	next := []models.SurveyOffer{offer("y", "2"), offer("z", "1")}
	oldCopy := append([]models.SurveyOffer(nil), old...)
	nextCopy := append([]models.SurveyOffer(nil), next...)

	Compute(old, next)

	assert.Equal(t, oldCopy, old)
	assert.Equal(t, nextCopy, next)
}

// Every id lands in exactly one bucket, or none when unchanged.
func TestCompute_Partition(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	randomSnapshot := func() []models.SurveyOffer {
		var out []models.SurveyOffer
		for i := 0; i < 20; i++ {
			if rnd.Intn(2) == 0 {
				continue
			}
			out = append(out, offer(fmt.Sprintf("s%d", i), fmt.Sprintf("%d", rnd.Intn(3))))
		}
		return out
	}

	for round := 0; round < 200; round++ {
		old, next := randomSnapshot(), randomSnapshot()
		change := Compute(old, next)

		oldByID := map[string]models.SurveyOffer{}
		for _, o := range old {
			oldByID[o.ID] = o
		}
		nextByID := map[string]models.SurveyOffer{}
		for _, o := range next {
			nextByID[o.ID] = o
		}

		count := map[string]int{}
		for _, o := range change.Added {
			count[o.ID]++
			_, inOld := oldByID[o.ID]
			assert.False(t, inOld)
		}
		for _, o := range change.Updated {
			count[o.ID]++
			assert.False(t, oldByID[o.ID].Equal(o))
		}
		for _, o := range change.Removed {
			count[o.ID]++
			_, inNext := nextByID[o.ID]
			assert.False(t, inNext)
		}

		for id, o := range nextByID {
			prev, inOld := oldByID[id]
			if inOld && prev.Equal(o) {
				assert.Zero(t, count[id], "unchanged %s reported", id)
			} else {
				assert.Equal(t, 1, count[id], "id %s", id)
			}
		}
		for id := range oldByID {
			if _, inNext := nextByID[id]; !inNext {
				assert.Equal(t, 1, count[id], "id %s", id)
			}
		}
	}
}

package posts

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"usergrid/internal/model"
)

func post(id string, owner *model.ID) model.Post {
	return model.Post{ID: model.ID(id), UserID: owner, Title: model.Str("post " + id)}
}

func TestGroupByUser_KeepsSourceOrder(t *testing.T) {
	one, two := model.IDPtr("1"), model.IDPtr("2")
	in := []model.Post{
		post("10", one),
		post("11", two),
		post("12", nil),
		post("13", one),
	}

	got := GroupByUser(in)

	want := Index{
		"1": {in[0], in[3]},
		"2": {in[1]},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupByUser mismatch (-want +got):\n%s", diff)
	}
	users := []model.User{{ID: "1"}, {ID: "2"}}
	assert.Equal(t, 3, got.TotalFor(users))
	assert.Equal(t, 2, got.TotalFor(users[:1]), "hidden users' posts are not counted")
	assert.Equal(t, 0, got.TotalFor([]model.User{{ID: "99"}}))
}

func TestGroupByUser_Empty(t *testing.T) {
	assert.Empty(t, GroupByUser(nil))
	assert.Equal(t, 0, GroupByUser(nil).TotalFor([]model.User{{ID: "1"}}))
}

func TestGroupByUser_ZeroIDIsAnOwner(t *testing.T) {
	idx := GroupByUser([]model.Post{post("1", model.IDPtr("0"))})
	assert.Len(t, idx.For("0"), 1)
}

func TestIndex_ForMissingUser(t *testing.T) {
	idx := GroupByUser([]model.Post{post("1", model.IDPtr("1"))})
	bucket := idx.For("99")
	assert.NotNil(t, bucket)
	assert.Empty(t, bucket)
}

// Every owned post lands in exactly one bucket and unowned posts in none.
func TestGroupByUser_PartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		in := make([]model.Post, n)
		owned := make(map[model.ID]bool)
		for i := range in {
			var owner *model.ID
			if rng.Intn(4) != 0 {
				owner = model.IDPtr(model.ID(fmt.Sprint(rng.Intn(5))))
			}
			in[i] = post(fmt.Sprintf("%d-%d", round, i), owner)
			if owner != nil {
				owned[in[i].ID] = true
			}
		}

		idx := GroupByUser(in)

		seen := make(map[model.ID]int)
		for userID, bucket := range idx {
			for _, p := range bucket {
				seen[p.ID]++
				assert.Equal(t, userID, *p.UserID)
			}
		}
		assert.Len(t, seen, len(owned))
		for id := range owned {
			assert.Equal(t, 1, seen[id], "post %s", id)
		}
		all := make([]model.User, 0, 5)
		for i := 0; i < 5; i++ {
			all = append(all, model.User{ID: model.ID(fmt.Sprint(i))})
		}
		assert.Equal(t, len(owned), idx.TotalFor(all))
	}
}

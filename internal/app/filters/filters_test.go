package filters

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/portaladmin/internal/app/models"
)

func sampleUsers() []models.User {
	return []models.User{
		{ID: "a", FullName: "Ama Owusu", UserAccess: "Batch 1 - Online", IsAdmitted: true, Email: "ama@example.com"},
		{ID: "b", FullName: "Kofi Mensah", UserAccess: "Batch 2 - Onsite", IsAdmitted: false, Email: "kofi@example.com"},
		{ID: "c", FullName: "Efua Boateng", UserAccess: "batch 12 - Online", IsAdmitted: true, Email: "efua@example.com"},
		{ID: "d", FullName: "Yaw Darko", UserAccess: models.NotAvailable, IsAdmitted: false, Email: models.NotAvailable},
	}
}

func ids(users []models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestUsersText(t *testing.T) {
	users := sampleUsers()
	assert.Equal(t, []string{"b"}, ids(Users(users, UserFilter{Search: "KOFI"})))
	assert.Equal(t, []string{"a", "c"}, ids(Users(users, UserFilter{Search: "online"})))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Users(users, UserFilter{})))
}

func TestUsersAdmission(t *testing.T) {
	users := sampleUsers()
	assert.Equal(t, []string{"a", "c"}, ids(Users(users, UserFilter{Admitted: AdmissionAdmitted})))
	assert.Equal(t, []string{"b", "d"}, ids(Users(users, UserFilter{Admitted: AdmissionNotAdmitted})))
	assert.Len(t, Users(users, UserFilter{Admitted: AdmissionAll}), 4)
}

func TestUsersBatch(t *testing.T) {
	users := sampleUsers()
	assert.Equal(t, []string{"a", "c"}, ids(Users(users, UserFilter{Batch: "Batch 1"})))
	assert.Equal(t, []string{"b"}, ids(Users(users, UserFilter{Batch: "batch 2"})))
	assert.Equal(t, []string{"b", "c"}, ids(Users(users, UserFilter{Batch: "2"})))
	assert.Len(t, Users(users, UserFilter{Batch: "   "}), 4)
	// the batch is only the part before the separator
	assert.Empty(t, Users(users, UserFilter{Batch: "online"}))
}

func TestUsersCombined(t *testing.T) {
	users := sampleUsers()
	f := UserFilter{Search: "example.com", Admitted: AdmissionAdmitted, Batch: "batch 1"}
	assert.Equal(t, []string{"a", "c"}, ids(Users(users, f)))
	f.Search = "efua"
	assert.Equal(t, []string{"c"}, ids(Users(users, f)))
}

func TestUsersDoesNotMutateInput(t *testing.T) {
	users := sampleUsers()
	before := append([]models.User(nil), users...)
	_ = Users(users, UserFilter{Admitted: AdmissionAdmitted})
	assert.Equal(t, before, users)
}

func randomUser(r *rand.Rand, i int) models.User {
	batches := []string{"Batch 1 - Online", "Batch 2 - Onsite", "BATCH 3", "N/A", "", "Cohort-9"}
	names := []string{"Ama", "Kofi", "Efua", "Yaw", "Akosua"}
	return models.User{
		ID:         fmt.Sprintf("u%d", i),
		FullName:   names[r.Intn(len(names))],
		UserAccess: batches[r.Intn(len(batches))],
		IsAdmitted: r.Intn(2) == 0,
		Phone:      int64(r.Intn(1000)),
	}
}

func randomFilter(r *rand.Rand) UserFilter {
	searches := []string{"", "a", "KOFI", "batch", "1", "zzz"}
	batches := []string{"", " ", "batch 1", "2", "cohort", "x"}
	admissions := []Admission{AdmissionAll, AdmissionAdmitted, AdmissionNotAdmitted}
	return UserFilter{
		Search:   searches[r.Intn(len(searches))],
		Admitted: admissions[r.Intn(len(admissions))],
		Batch:    batches[r.Intn(len(batches))],
	}
}

func TestUsersProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		users := make([]models.User, r.Intn(12))
		for i := range users {
			users[i] = randomUser(r, i)
		}
		f := randomFilter(r)

		got := Users(users, f)

		// subset, in order, containing exactly the records matching every predicate
		var want []models.User
		for _, u := range users {
			if f.MatchesText(u) && f.MatchesAdmission(u) && f.MatchesBatch(u) {
				want = append(want, u)
			}
		}
		require.Equal(t, len(want), len(got))
		for i := range want {
			assert.Equal(t, want[i], got[i])
		}

		// idempotent
		assert.Equal(t, got, Users(got, f))
	}
}

func TestAnnouncementsImportance(t *testing.T) {
	posts := []models.Announcement{{Title: "A", IsImportant: true}, {Title: "B", IsImportant: false}}

	important := Announcements(posts, true)
	require.Len(t, important, 1)
	assert.Equal(t, "A", important[0].Title)

	assert.Len(t, Announcements(posts, false), 2)
}

func TestLecturesAccess(t *testing.T) {
	lectures := []models.Lecture{
		{ID: "0", AccessBy: []string{"Online"}},
		{ID: "1", AccessBy: []string{"Onsite"}},
		{ID: "2", AccessBy: []string{"Online", "Onsite"}},
	}

	onsite := Lectures(lectures, "Onsite")
	require.Len(t, onsite, 2)
	assert.Equal(t, "1", onsite[0].ID)
	assert.Equal(t, "2", onsite[1].ID)

	assert.Len(t, Lectures(lectures, "Online"), 2)
	assert.Len(t, Lectures(lectures, AccessAll), 3)
	assert.Len(t, Lectures(lectures, ""), 3)
	assert.Empty(t, Lectures(lectures, "Hybrid"))
}

func TestParseAdmission(t *testing.T) {
	assert.Equal(t, AdmissionAdmitted, ParseAdmission("admitted"))
	assert.Equal(t, AdmissionNotAdmitted, ParseAdmission("notAdmitted"))
	assert.Equal(t, AdmissionAll, ParseAdmission("whatever"))
	assert.False(t, UserFilter{Admitted: AdmissionAll, Batch: " "}.Active())
	assert.True(t, UserFilter{Search: "x"}.Active())
}

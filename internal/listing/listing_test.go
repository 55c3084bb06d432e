package listing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

func student(id string, grade, age int, gender models.Gender, rating float64) *models.Student {
	return &models.Student{
		ID:     models.ID(id),
		Name:   "Student " + id,
		Email:  "s" + id + "@school.test",
		Grade:  grade,
		Age:    age,
		Gender: gender,
		Rating: models.NewRating(rating),
	}
}

func ids[T Record](records []T) []models.ID {
	out := make([]models.ID, 0, len(records))
	for _, r := range records {
		out = append(out, r.RecordID())
	}
	return out
}

func tenStudents() []*models.Student {
	return []*models.Student{
		student("1", 5, 10, models.GenderMale, 3.1),
		student("2", 5, 11, models.GenderFemale, 4.8),
		student("3", 6, 12, models.GenderMale, 2.0),
		student("4", 5, 10, models.GenderFemale, 4.0),
		student("5", 7, 13, models.GenderMale, 4.9),
		student("6", 5, 11, models.GenderMale, 1.5),
		student("7", 8, 14, models.GenderFemale, 3.3),
		student("8", 9, 15, models.GenderMale, 4.4),
		student("9", 5, 10, models.GenderFemale, 4.0),
		student("10", 12, 18, models.GenderMale, 2.7),
	}
}

func TestNewFilterStateStartsAtAll(t *testing.T) {
	state := StudentSchema().NewFilterState()
	assert.Equal(t, All, state.Gender)
	assert.Equal(t, SortNone, state.Rating)
	assert.Equal(t, map[string]string{CriterionGrade: All, CriterionAge: All}, state.Criteria)
	assert.Empty(t, state.Search)
}

func TestStudentMatches(t *testing.T) {
	schema := StudentSchema()
	s := student("1", 5, 12, models.GenderMale, 4)
	s.Name = "Ana Lopez"

	tests := []struct {
		name  string
		patch FilterPatch
		want  bool
	}{
		{name: "no criteria", want: true},
		{name: "search name case insensitive", patch: FilterPatch{Search: ptr("LOPEZ")}, want: true},
		{name: "search email", patch: FilterPatch{Search: ptr("s1@school")}, want: true},
		{name: "search miss", patch: FilterPatch{Search: ptr("zed")}, want: false},
		{name: "gender match", patch: FilterPatch{Gender: ptr("male")}, want: true},
		{name: "gender miss", patch: FilterPatch{Gender: ptr("female")}, want: false},
		{name: "grade match", patch: FilterPatch{Criteria: map[string]string{CriterionGrade: "5"}}, want: true},
		{name: "grade miss", patch: FilterPatch{Criteria: map[string]string{CriterionGrade: "6"}}, want: false},
		{name: "age bucket", patch: FilterPatch{Criteria: map[string]string{CriterionAge: "11-14"}}, want: true},
		{name: "age bucket miss", patch: FilterPatch{Criteria: map[string]string{CriterionAge: "15-18"}}, want: false},
		{name: "all criteria", patch: FilterPatch{
			Search: ptr("ana"), Gender: ptr("male"),
			Criteria: map[string]string{CriterionGrade: "5", CriterionAge: "11-14"},
		}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := schema.NewFilterState().Apply(tt.patch)
			assert.Equal(t, tt.want, schema.Matches(s, state))
		})
	}
}

func TestTeacherMatches(t *testing.T) {
	schema := TeacherSchema()
	teacher := &models.Teacher{ID: "1", Name: "Bo", Email: "bo@school.test", Subject: "Physics", Experience: 21, Gender: models.GenderFemale}

	state := schema.NewFilterState()
	assert.True(t, schema.Matches(teacher, state.Apply(FilterPatch{Search: ptr("phys")})))
	assert.True(t, schema.Matches(teacher, state.Apply(FilterPatch{Criteria: map[string]string{CriterionExperience: "20+"}})))
	assert.False(t, schema.Matches(teacher, state.Apply(FilterPatch{Criteria: map[string]string{CriterionExperience: "11-20"}})))
	assert.True(t, schema.Matches(teacher, state.Apply(FilterPatch{Criteria: map[string]string{CriterionProfession: "Physics"}})))
	assert.False(t, schema.Matches(teacher, state.Apply(FilterPatch{Criteria: map[string]string{CriterionProfession: "physics"}})))

	teacher.Experience = 20
	assert.False(t, schema.Matches(teacher, state.Apply(FilterPatch{Criteria: map[string]string{CriterionExperience: "20+"}})))
}

func TestProfessionsAreDistinctSubjects(t *testing.T) {
	schema := TeacherSchema()
	teachers := []*models.Teacher{
		{ID: "1", Subject: "Math"},
		{ID: "2", Subject: "Art"},
		{ID: "3", Subject: "Math"},
	}
	assert.Equal(t, []string{"Math", "Art"}, schema.Options(teachers)[CriterionProfession])
	assert.Equal(t, []string{"0-5", "6-10", "11-20", "20+"}, schema.Options(teachers)[CriterionExperience])
}

func TestValidate(t *testing.T) {
	schema := StudentSchema()
	options := schema.Options(nil)
	base := schema.NewFilterState()

	require.NoError(t, schema.Validate(base, options))
	require.NoError(t, schema.Validate(base.Apply(FilterPatch{Criteria: map[string]string{CriterionGrade: "12"}}), options))

	for _, bad := range []FilterPatch{
		{Gender: ptr("other")},
		{Rating: ptr("best")},
		{Criteria: map[string]string{CriterionGrade: "13"}},
		{Criteria: map[string]string{CriterionAge: "1-5"}},
		{Criteria: map[string]string{"colour": "red"}},
	} {
		err := schema.Validate(base.Apply(bad), options)
		assert.True(t, errors.Is(err, ErrInvalidFilter), "patch %+v", bad)
	}
}

func TestTighteningACriterionNeverGrowsTheVisibleSet(t *testing.T) {
	schema := StudentSchema()
	records := tenStudents()
	base := schema.NewFilterState()
	all := len(schema.Filter(records, base))

	for _, patch := range []FilterPatch{
		{Gender: ptr("male")},
		{Criteria: map[string]string{CriterionGrade: "5"}},
		{Criteria: map[string]string{CriterionAge: "6-10"}},
		{Search: ptr("1")},
	} {
		narrowed := base.Apply(patch)
		count := len(schema.Filter(records, narrowed))
		assert.LessOrEqual(t, count, all)

		further := narrowed.Apply(FilterPatch{Gender: ptr("female")})
		assert.LessOrEqual(t, len(schema.Filter(records, further)), all)
	}
}

func TestFilteringIsIdempotent(t *testing.T) {
	schema := StudentSchema()
	state := schema.NewFilterState().Apply(FilterPatch{Gender: ptr("female"), Criteria: map[string]string{CriterionGrade: "5"}})

	once := schema.Filter(tenStudents(), state)
	twice := schema.Filter(once, state)
	assert.Equal(t, ids(once), ids(twice))
}

func TestSortIsStable(t *testing.T) {
	records := []*models.Student{
		student("a", 1, 6, models.GenderMale, 4.0),
		student("b", 1, 6, models.GenderMale, 2.0),
		student("c", 1, 6, models.GenderMale, 4.0),
		student("d", 1, 6, models.GenderMale, 5.0),
	}

	assert.Equal(t, []models.ID{"d", "a", "c", "b"}, ids(SortByRating(records, SortHighest)))
	assert.Equal(t, []models.ID{"b", "a", "c", "d"}, ids(SortByRating(records, SortLowest)))
	assert.Equal(t, []models.ID{"a", "b", "c", "d"}, ids(SortByRating(records, SortNone)))
	assert.Equal(t, []models.ID{"a", "b", "c", "d"}, ids(records), "input must not be reordered")
}

func TestSortUsesNormalizedRating(t *testing.T) {
	records := []*models.Student{
		student("pct", 1, 6, models.GenderMale, 80), // 4.2 once normalized
		student("direct", 1, 6, models.GenderMale, 4.5),
	}
	assert.Equal(t, []models.ID{"direct", "pct"}, ids(SortByRating(records, SortHighest)))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 17)
	for i := range items {
		items[i] = i
	}

	w := Paginate(items, 3, 8)
	assert.Equal(t, 3, w.TotalPages)
	assert.Len(t, w.Items, 1)
	assert.Equal(t, 17, w.From)
	assert.Equal(t, 17, w.To)

	first := Paginate(items, 1, 8)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, first.Items)
	assert.Equal(t, 1, first.From)
	assert.Equal(t, 8, first.To)

	empty := Paginate([]int{}, 1, 8)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 0, empty.From)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(4, TotalPages(9, 8)))
	assert.Equal(t, 2, ClampPage(2, 2))
	assert.Equal(t, 3, ClampPage(3, 0), "empty results keep the page")
}

func TestStep(t *testing.T) {
	assert.Equal(t, 2, Step(1, 3, StepNext))
	assert.Equal(t, 3, Step(3, 3, StepNext))
	assert.Equal(t, 1, Step(1, 3, StepPrev))
	assert.Equal(t, 1, Step(1, 0, StepNext))
}

func TestReconcile(t *testing.T) {
	records := []*models.Student{
		student("5", 1, 6, models.GenderMale, 3),
		student("7", 1, 6, models.GenderMale, 3),
		student("9", 1, 6, models.GenderMale, 3),
	}

	updated := student("7", 2, 7, models.GenderFemale, 4.5)
	out, ok := Replace(records, updated)
	require.True(t, ok)
	require.Len(t, out, 3)
	count := 0
	for _, r := range out {
		if r.ID == "7" {
			count++
			assert.Same(t, updated, r)
		}
	}
	assert.Equal(t, 1, count)
	assert.Same(t, records[0], out[0])
	assert.Same(t, records[2], out[2])
	assert.Equal(t, 1, records[1].Grade, "input slice untouched")

	_, ok = Replace(records, student("404", 1, 6, models.GenderMale, 3))
	assert.False(t, ok)

	removed, ok := Remove(records, "5")
	require.True(t, ok)
	assert.Equal(t, []models.ID{"7", "9"}, ids(removed))
	assert.Len(t, records, 3)

	created := student("11", 1, 6, models.GenderMale, 3)
	appended := Append(records, created)
	assert.Equal(t, []models.ID{"5", "7", "9", "11"}, ids(appended))
}

func TestDeriveGradeFiveHighestThenDelete(t *testing.T) {
	schema := StudentSchema()
	records := tenStudents()
	state := schema.NewFilterState().Apply(FilterPatch{
		Rating:   ptr(SortHighest),
		Criteria: map[string]string{CriterionGrade: "5"},
	})

	w := schema.Derive(records, state, 1, DefaultPerPage)
	assert.Equal(t, []models.ID{"2", "4", "9", "1", "6"}, ids(w.Items))
	assert.Equal(t, 1, w.TotalPages)

	records, ok := Remove(records, w.Items[0].ID)
	require.True(t, ok)
	w = schema.Derive(records, state, 1, DefaultPerPage)
	assert.Equal(t, []models.ID{"4", "9", "1", "6"}, ids(w.Items))
}

func TestDeriveResetsPageWhenResultShrinks(t *testing.T) {
	schema := StudentSchema()
	records := make([]*models.Student, 0, 17)
	for i := 1; i <= 17; i++ {
		records = append(records, student(fmt.Sprint(i), 5, 10, models.GenderMale, 3))
	}
	state := schema.NewFilterState()

	w := schema.Derive(records, state, 3, DefaultPerPage)
	assert.Equal(t, 3, w.Page)
	assert.Len(t, w.Items, 1)

	w = schema.Derive(records[:9], state, 4, DefaultPerPage)
	assert.Equal(t, 1, w.Page)
	assert.Len(t, w.Items, 8)

	w = schema.Derive(records, state.Apply(FilterPatch{Search: ptr("nobody")}), 3, DefaultPerPage)
	assert.Equal(t, 3, w.Page, "no reset when there are no pages")
	assert.Empty(t, w.Items)
}

func ptr(s string) *string { return &s }

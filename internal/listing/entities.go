package listing

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

// Student criteria keys.
const (
	CriterionGrade = "grade"
	CriterionAge   = "age"
)

// Teacher criteria keys.
const (
	CriterionExperience = "experience"
	CriterionProfession = "profession"
)

func gradeOptions() []string {
	out := make([]string, 0, 12)
	for g := 1; g <= 12; g++ {
		out = append(out, strconv.Itoa(g))
	}
	return out
}

// StudentSchema lists the students collection.
func StudentSchema() *Schema[*models.Student] {
	return &Schema[*models.Student]{
		Entity:   models.EntityStudents,
		Singular: "student",
		SearchFields: func(s *models.Student) []string {
			return []string{s.Name, s.Email}
		},
		Criteria: []Criterion[*models.Student]{
			IntCriterion(CriterionGrade, func(s *models.Student) int { return s.Grade }, gradeOptions()),
			BucketCriterion(CriterionAge, func(s *models.Student) int { return s.Age },
				Bucket{Label: "6-10", Min: 6, Max: 10},
				Bucket{Label: "11-14", Min: 11, Max: 14},
				Bucket{Label: "15-18", Min: 15, Max: 18},
			),
		},
		Columns: append(commonColumns[*models.Student](),
			Column[*models.Student]{Header: "Email", Value: func(s *models.Student) string { return s.Email }},
			Column[*models.Student]{Header: "Grade", Value: func(s *models.Student) string { return strconv.Itoa(s.Grade) }},
			Column[*models.Student]{Header: "Age", Value: func(s *models.Student) string { return strconv.Itoa(s.Age) }},
			Column[*models.Student]{Header: "Coins", Value: func(s *models.Student) string { return strconv.Itoa(s.Coins) }},
		),
	}
}

// TeacherSchema lists the teachers collection.
func TeacherSchema() *Schema[*models.Teacher] {
	return &Schema[*models.Teacher]{
		Entity:   models.EntityTeachers,
		Singular: "teacher",
		SearchFields: func(t *models.Teacher) []string {
			return []string{t.Name, t.Email, t.Subject}
		},
		Criteria: []Criterion[*models.Teacher]{
			BucketCriterion(CriterionExperience, func(t *models.Teacher) int { return t.Experience },
				Bucket{Label: "0-5", Min: 0, Max: 5},
				Bucket{Label: "6-10", Min: 6, Max: 10},
				Bucket{Label: "11-20", Min: 11, Max: 20},
				AtLeast("20+", 21),
			),
			DistinctCriterion(CriterionProfession, func(t *models.Teacher) string { return t.Subject }),
		},
		Columns: append(commonColumns[*models.Teacher](),
			Column[*models.Teacher]{Header: "Email", Value: func(t *models.Teacher) string { return t.Email }},
			Column[*models.Teacher]{Header: "Subject", Value: func(t *models.Teacher) string { return t.Subject }},
			Column[*models.Teacher]{Header: "Experience", Value: func(t *models.Teacher) string { return strconv.Itoa(t.Experience) }},
		),
	}
}

type namedRecord interface {
	Record
	RecordName() string
}

func commonColumns[T namedRecord]() []Column[T] {
	return []Column[T]{
		{Header: "ID", Value: func(r T) string { return string(r.RecordID()) }},
		{Header: "Name", Value: func(r T) string { return r.RecordName() }},
		{Header: "Gender", Value: func(r T) string { return r.RecordGender().Display() }},
		{Header: "Rating", Value: func(r T) string {
			return fmt.Sprintf("%.1f", models.NormalizeRating(r.RecordRating()))
		}},
	}
}

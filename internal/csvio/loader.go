// Package csvio is the boundary glue between on-disk spreadsheets and the
// engine's typed domain model. All ad-hoc string-encoded columns (LTPSC,
// Batches, Batch_Prof_Map, Students_Per_Batch) are normalized here; the
// engine never sees raw tabular data.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/campushub/timetabler/pkg/model"
)

// CourseCSV mirrors one row of courses.csv.
type CourseCSV struct {
	CourseCode       string `csv:"CourseCode"`
	CourseName       string `csv:"CourseName"`
	Batches          string `csv:"Batches"`
	LTPSC            string `csv:"LTPSC"`
	Professor        string `csv:"Professor"`
	Semester         int    `csv:"Semester"`
	RoomType         string `csv:"RoomType"`
	StudentsPerBatch string `csv:"Students_Per_Batch"`
	BatchProfMap     string `csv:"Batch_Prof_Map"`
	Term             string `csv:"Term"`
	ElectiveGroup    string `csv:"Elective_Group"`
}

// ClassroomCSV mirrors one row of classrooms.csv.
type ClassroomCSV struct {
	RoomCode       string `csv:"RoomCode"`
	Type           string `csv:"Type"`
	Capacity       int    `csv:"Capacity"`
	AllowedBatches string `csv:"Allowed_Batches"`
}

// ProfessorCSV mirrors one row of professors.csv.
type ProfessorCSV struct {
	Professor      string `csv:"Professor"`
	Courses        string `csv:"Courses"`
	MaxHoursPerDay int    `csv:"MaxHoursPerDay"`
	BusyDays       string `csv:"Busy_Days"`
	PreferredSlots string `csv:"Preferred_Slots"`
}

func setDelimiter(delim rune) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		return r
	})
}

// LoadCourses reads and parses the courses file, returning the typed courses
// plus the batch list derived from them.
func LoadCourses(path string, delim rune) ([]*model.Course, []*model.Batch, error) {
	setDelimiter(delim)
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rows []*CourseCSV
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	batchSizes := make(map[string]int)
	var courses []*model.Course
	for _, row := range rows {
		hours, err := parseLTPSC(row.LTPSC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: course %s: %v", model.ErrMalformedInput, row.CourseCode, err)
		}
		batches := parseList(row.Batches)
		if len(batches) == 0 {
			return nil, nil, fmt.Errorf("%w: course %s has no batches", model.ErrMalformedInput, row.CourseCode)
		}
		students, err := parseStudentsPerBatch(row.StudentsPerBatch, batches)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: course %s: %v", model.ErrMalformedInput, row.CourseCode, err)
		}
		profMap, err := parseBatchProfMap(row.BatchProfMap)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: course %s: %v", model.ErrMalformedInput, row.CourseCode, err)
		}
		roomType := model.RoomType(row.RoomType)
		if roomType == "" {
			roomType = model.RoomLecture
		}
		if roomType != model.RoomLecture && roomType != model.RoomLab {
			return nil, nil, fmt.Errorf("%w: course %s: unknown room type %q", model.ErrMalformedInput, row.CourseCode, row.RoomType)
		}
		courses = append(courses, &model.Course{
			Code:             row.CourseCode,
			Name:             row.CourseName,
			Hours:            hours,
			Semester:         row.Semester,
			RoomType:         roomType,
			Professor:        row.Professor,
			ProfessorByBatch: profMap,
			Batches:          batches,
			StudentsByBatch:  students,
			Term:             model.ParseTerm(row.Term),
			ElectiveGroup:    row.ElectiveGroup,
		})
		for batch, n := range students {
			batchSizes[batch] = max(batchSizes[batch], n)
		}
		for _, batch := range batches {
			if _, ok := batchSizes[batch]; !ok {
				batchSizes[batch] = model.DefaultBatchSize
			}
		}
	}
	return courses, batchesFromSizes(batchSizes), nil
}

// LoadClassrooms reads and parses the classrooms file.
func LoadClassrooms(path string, delim rune) ([]*model.Classroom, error) {
	setDelimiter(delim)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rows []*ClassroomCSV
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var rooms []*model.Classroom
	for _, row := range rows {
		roomType := model.RoomType(row.Type)
		if roomType != model.RoomLecture && roomType != model.RoomLab {
			return nil, fmt.Errorf("%w: room %s: unknown type %q", model.ErrMalformedInput, row.RoomCode, row.Type)
		}
		rooms = append(rooms, &model.Classroom{
			Code:           row.RoomCode,
			Type:           roomType,
			Capacity:       row.Capacity,
			AllowedBatches: parseList(row.AllowedBatches),
		})
	}
	return rooms, nil
}

// LoadProfessors reads and parses the professors file.
func LoadProfessors(path string, delim rune) ([]*model.Professor, error) {
	setDelimiter(delim)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rows []*ProfessorCSV
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var profs []*model.Professor
	for _, row := range rows {
		busy, err := parseDays(row.BusyDays)
		if err != nil {
			return nil, fmt.Errorf("%w: professor %s: %v", model.ErrMalformedInput, row.Professor, err)
		}
		preferred, err := parseInts(row.PreferredSlots)
		if err != nil {
			return nil, fmt.Errorf("%w: professor %s: %v", model.ErrMalformedInput, row.Professor, err)
		}
		profs = append(profs, &model.Professor{
			Name:           row.Professor,
			Courses:        parseList(row.Courses),
			MaxHoursPerDay: row.MaxHoursPerDay,
			BusyDays:       busy,
			PreferredSlots: preferred,
		})
	}
	return profs, nil
}

// parseLTPSC accepts "3-0-2-0-4", "3,0,2,0,4" and "[3, 0, 2, 0, 4]".
func parseLTPSC(s string) (model.LTPSC, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "[]() ")
	sep := ","
	if !strings.Contains(trimmed, ",") {
		sep = "-"
	}
	parts := strings.Split(trimmed, sep)
	if len(parts) != 5 {
		return model.LTPSC{}, fmt.Errorf("LTPSC %q must have 5 values, got %d", s, len(parts))
	}
	vals := make([]int, 5)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return model.LTPSC{}, fmt.Errorf("LTPSC %q: %v", s, err)
		}
		vals[i] = n
	}
	return model.LTPSC{
		Lecture:   vals[0],
		Tutorial:  vals[1],
		Practical: vals[2],
		SelfStudy: vals[3],
		Credits:   vals[4],
	}, nil
}

// parseList accepts "A,B", "['A', 'B']" and a single bare value.
func parseList(s string) []string {
	trimmed := strings.Trim(strings.TrimSpace(s), "[]() ")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ",")
	out := parts[:0]
	for _, part := range parts {
		cleaned := strings.Trim(strings.TrimSpace(part), `'" `)
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// parseBatchProfMap accepts "CSE_1A=Prof. A|CSE_1B=Prof. B" and the legacy
// spreadsheet form "{'CSE_1A': 'Prof. A', 'CSE_1B': 'Prof. B'}".
func parseBatchProfMap(s string) (map[string]string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}
	sep, kv := "|", "="
	if strings.HasPrefix(trimmed, "{") {
		trimmed = strings.Trim(trimmed, "{} ")
		sep, kv = ",", ":"
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(trimmed, sep) {
		key, value, found := strings.Cut(pair, kv)
		if !found {
			return nil, fmt.Errorf("batch-professor pair %q is not %s-separated", pair, kv)
		}
		batch := strings.Trim(strings.TrimSpace(key), `'" `)
		prof := strings.Trim(strings.TrimSpace(value), `'" `)
		if batch == "" || prof == "" {
			return nil, fmt.Errorf("batch-professor pair %q is incomplete", pair)
		}
		out[batch] = prof
	}
	return out, nil
}

// parseStudentsPerBatch accepts "60,55" aligned with the batch list, a single
// count applied to every batch, or blank for the default size.
func parseStudentsPerBatch(s string, batches []string) (map[string]int, error) {
	counts, err := parseInts(s)
	if err != nil {
		return nil, fmt.Errorf("students per batch %q: %v", s, err)
	}
	if len(counts) == 0 {
		return nil, nil
	}
	if len(counts) == 1 {
		return lo.SliceToMap(batches, func(b string) (string, int) { return b, counts[0] }), nil
	}
	if len(counts) != len(batches) {
		return nil, fmt.Errorf("%d student counts for %d batches", len(counts), len(batches))
	}
	out := make(map[string]int, len(batches))
	for i, batch := range batches {
		out[batch] = counts[i]
	}
	return out, nil
}

func parseInts(s string) ([]int, error) {
	parts := parseList(s)
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

var dayIndex = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thursday": 3,
	"fri": 4, "friday": 4,
	"sat": 5, "saturday": 5,
}

// parseDays accepts day names ("Mon,Wed") or indices ("0,2").
func parseDays(s string) ([]int, error) {
	parts := parseList(s)
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		if idx, ok := dayIndex[strings.ToLower(part)]; ok {
			out = append(out, idx)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("unknown day %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func batchesFromSizes(sizes map[string]int) []*model.Batch {
	ids := lo.Keys(sizes)
	sort.Strings(ids)
	return lo.Map(ids, func(id string, _ int) *model.Batch {
		branch, year := splitBatchID(id)
		return &model.Batch{ID: id, Branch: branch, Year: year, Students: sizes[id]}
	})
}

// splitBatchID best-effort parses IDs shaped like CSE_Y2_A.
func splitBatchID(id string) (branch string, year int) {
	parts := strings.Split(id, "_")
	if len(parts) == 0 {
		return "", 0
	}
	branch = parts[0]
	for _, part := range parts[1:] {
		if len(part) > 1 && (part[0] == 'Y' || part[0] == 'y') {
			if n, err := strconv.Atoi(part[1:]); err == nil {
				year = n
			}
		}
	}
	return branch, year
}

// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// field identifies a CourseRecord attribute bound from a source column.
type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldCollege
	fieldCampus
	fieldDepartment
	fieldScheduleType
	fieldTerm
	fieldCRN
	fieldSection
	fieldPrimaryFaculty
	fieldSimilarIDs
	fieldCount
)

// fieldNames are the canonical column names, used in error messages.
var fieldNames = [fieldCount]string{
	fieldTitle:          "Course Title",
	fieldDescription:    "Course Description",
	fieldCollege:        "College",
	fieldCampus:         "Campus",
	fieldDepartment:     "Department",
	fieldScheduleType:   "Schedule Type",
	fieldTerm:           "Term",
	fieldCRN:            "CRN",
	fieldSection:        "Section",
	fieldPrimaryFaculty: "Primary Faculty",
	fieldSimilarIDs:     "Similar_Course_Ids",
}

// columnAliases maps normalized header names to fields.
var columnAliases = map[string]field{
	"title":             fieldTitle,
	"coursetitle":       fieldTitle,
	"description":       fieldDescription,
	"coursedescription": fieldDescription,
	"college":           fieldCollege,
	"campus":            fieldCampus,
	"department":        fieldDepartment,
	"dept":              fieldDepartment,
	"scheduletype":      fieldScheduleType,
	"term":              fieldTerm,
	"semester":          fieldTerm,
	"crn":               fieldCRN,
	"section":           fieldSection,
	"primaryfaculty":    fieldPrimaryFaculty,
	"faculty":           fieldPrimaryFaculty,
	"instructor":        fieldPrimaryFaculty,
	"similarcourseids":  fieldSimilarIDs,
	"similarids":        fieldSimilarIDs,
}

// normalizeColumn lowercases name and strips spaces, underscores and hyphens.
func normalizeColumn(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '_', '-', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// columnBinding maps each field to a source column position.
type columnBinding [fieldCount]int

// bindColumns resolves source headers to fields. The first header matching a
// field wins; unknown headers are ignored. Every field is required.
func bindColumns(headers []string) (columnBinding, error) {
	var b columnBinding
	for i := range b {
		b[i] = -1
	}
	for pos, h := range headers {
		f, ok := columnAliases[normalizeColumn(h)]
		if !ok || b[f] >= 0 {
			continue
		}
		b[f] = pos
	}

	var missing []string
	for f, pos := range b {
		if pos < 0 {
			missing = append(missing, fieldNames[f])
		}
	}
	if len(missing) > 0 {
		return b, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return b, nil
}

// buildRecord converts one source row into a record using binding.
func (b *columnBinding) buildRecord(row []any) (CourseRecord, error) {
	var rec CourseRecord
	if len(row) <= b.maxPos() {
		return rec, fmt.Errorf("row has %d values, want at least %d", len(row), b.maxPos()+1)
	}

	ids, err := parseSimilarIDs(row[b[fieldSimilarIDs]])
	if err != nil {
		return rec, fmt.Errorf("%s: %w", fieldNames[fieldSimilarIDs], err)
	}

	rec.Title = cellString(row[b[fieldTitle]])
	rec.Description = cellString(row[b[fieldDescription]])
	rec.College = cellString(row[b[fieldCollege]])
	rec.Campus = cellString(row[b[fieldCampus]])
	rec.Department = cellString(row[b[fieldDepartment]])
	rec.ScheduleType = cellString(row[b[fieldScheduleType]])
	rec.Term = cellString(row[b[fieldTerm]])
	rec.CRN = cellString(row[b[fieldCRN]])
	rec.Section = cellString(row[b[fieldSection]])
	rec.PrimaryFaculty = cellString(row[b[fieldPrimaryFaculty]])
	rec.SimilarCourseIDs = ids
	return rec, nil
}

func (b *columnBinding) maxPos() int {
	highest := -1
	for _, pos := range b {
		if pos > highest {
			highest = pos
		}
	}
	return highest
}

// cellString renders a scalar cell as text. Integral floats lose their
// fractional part so numeric CRNs read from typed sources stay "12345".
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return formatFloat(float64(val))
	case float64:
		return formatFloat(val)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseSimilarIDs accepts the encodings the upstream pipeline produces:
// typed lists (Parquet, JSON, Postgres arrays) and their text renderings
// such as "[3, 7, 1]" or "[3 7 1]".
func parseSimilarIDs(v any) ([]int, error) {
	switch val := v.(type) {
	case nil:
		return []int{}, nil
	case string:
		return parseIDList(val)
	case []byte:
		return parseIDList(string(val))
	case []int:
		out := make([]int, len(val))
		copy(out, val)
		return out, nil
	case []int32:
		out := make([]int, len(val))
		for i, id := range val {
			out[i] = int(id)
		}
		return out, nil
	case []int64:
		out := make([]int, len(val))
		for i, id := range val {
			out[i] = int(id)
		}
		return out, nil
	case []any:
		out := make([]int, 0, len(val))
		for i, elem := range val {
			id, err := toIndex(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, id)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported similar id encoding %T", v)
	}
}

// parseIDList parses a bracketed, comma or whitespace separated id list.
func parseIDList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		id, err := toIndex(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// toIndex converts a single list element to an identity index.
func toIndex(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int32:
		return int(val), nil
	case int64:
		return int(val), nil
	case uint32:
		return int(val), nil
	case uint64:
		if val > math.MaxInt32 {
			return 0, fmt.Errorf("id %d out of range", val)
		}
		return int(val), nil
	case float64:
		return integralFloat(val)
	case float32:
		return integralFloat(float64(val))
	case json.Number:
		return toIndex(val.String())
	case string:
		if id, err := strconv.Atoi(val); err == nil {
			return id, nil
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid id %q", val)
		}
		return integralFloat(f)
	default:
		return 0, fmt.Errorf("invalid id type %T", v)
	}
}

func integralFloat(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("id %v is not integral", f)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("id %v out of range", f)
	}
	return int(f), nil
}

package backend

import (
	"fmt"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// HeadlineKPI is one shaped headline metric for the overview cards.
type HeadlineKPI struct {
	Title string  `json:"title"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// headlineExprs maps card titles to JMESPath expressions over the raw
// overview payload. Order is the display order.
var headlineExprs = []struct {
	title string
	expr  string
	unit  string
}{
	{"Retención", "retentionRate", "%"},
	{"Tasa de finalización", "completionRate", "%"},
	{"Nota media", "averageGrade", ""},
	{"Estudiantes en riesgo", "studentsAtRisk", ""},
	{"Entregas fuera de plazo", "lateSubmissions", ""},
	{"Cursos activos", "totalActiveCourses", ""},
}

// ShapeHeadlineKPIs extracts the headline metric cards from a raw
// overview payload. Expressions that match nothing are skipped rather
// than rendered as zeroes, so a partial backend response degrades to
// fewer cards.
func ShapeHeadlineKPIs(raw map[string]any) ([]HeadlineKPI, error) {
	kpis := make([]HeadlineKPI, 0, len(headlineExprs))
	for _, h := range headlineExprs {
		result, err := jmespath.Search(h.expr, raw)
		if err != nil {
			return nil, fmt.Errorf("kpi expression %q: %w", h.expr, err)
		}
		value, ok := toFloat(result)
		if !ok {
			continue
		}
		kpis = append(kpis, HeadlineKPI{Title: h.title, Value: value, Unit: h.unit})
	}
	return kpis, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

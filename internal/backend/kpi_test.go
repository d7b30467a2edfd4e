package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeHeadlineKPIs(t *testing.T) {
	kpis, err := ShapeHeadlineKPIs(demoOverviewRaw())
	require.NoError(t, err)
	require.Len(t, kpis, 6)

	assert.Equal(t, "Retención", kpis[0].Title)
	assert.InDelta(t, 92, kpis[0].Value, 0.001)
	assert.Equal(t, "%", kpis[0].Unit)

	assert.Equal(t, "Estudiantes en riesgo", kpis[3].Title)
	assert.InDelta(t, 5, kpis[3].Value, 0.001)
}

func TestShapeHeadlineKPIs_PartialPayloadSkipsMissing(t *testing.T) {
	kpis, err := ShapeHeadlineKPIs(map[string]any{
		"retentionRate": 88.5,
	})
	require.NoError(t, err)
	require.Len(t, kpis, 1)
	assert.Equal(t, "Retención", kpis[0].Title)
}

func TestShapeHeadlineKPIs_EmptyPayload(t *testing.T) {
	kpis, err := ShapeHeadlineKPIs(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, kpis)
}

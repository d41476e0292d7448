package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Test", "Mark"},
		Rows: []map[string]string{
			{"Test": "Quiz 1", "Mark": "8"},
			{"Test": "Midterm", "Mark": "15"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Test,Mark", lines[0])
	assert.Equal(t, "Quiz 1,8", lines[1])
	assert.Equal(t, "Midterm,15", lines[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Test", "Mark"},
		Rows:    []map[string]string{{"Test": "Quiz 1", "Mark": "8"}},
	}, "Score report")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

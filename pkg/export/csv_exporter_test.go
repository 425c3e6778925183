package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	data, err := exporter.Render(Dataset{
		Headers: []string{"Name", "Class"},
		Rows: []map[string]string{
			{"Name": "Aarav Sharma", "Class": "5"},
			{"Name": "Diya, Patel", "Class": "6"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Name,Class\nAarav Sharma,5\n\"Diya, Patel\",6\n", string(data))
}

func TestCSVExporterRenderMissingColumnsStayEmpty(t *testing.T) {
	exporter := NewCSVExporter()

	data, err := exporter.Render(Dataset{
		Headers: []string{"Name", "Class"},
		Rows:    []map[string]string{{"Name": "Aarav"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Name,Class\nAarav,\n", string(data))
}

func TestCSVExporterRenderNoHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

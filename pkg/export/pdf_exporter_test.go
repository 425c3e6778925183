package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()

	data, err := exporter.Render(Dataset{
		Headers: []string{"Name", "Class"},
		Rows: []map[string]string{
			{"Name": "Aarav Sharma", "Class": "5"},
			{"Name": "Diya Patel", "Class": "6"},
		},
	}, "Class Marks")
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFExporterRenderNoHeaders(t *testing.T) {
	exporter := NewPDFExporter()

	_, err := exporter.Render(Dataset{}, "Class Marks")
	require.Error(t, err)
}

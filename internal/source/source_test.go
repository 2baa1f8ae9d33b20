package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoreau/flightlog-backend-go/internal/models"
	"github.com/amoreau/flightlog-backend-go/pkg/logger"
)

const sampleKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <LineString>
        <coordinates>
          1.234,45.678,850 1.240,45.680,870
        </coordinates>
      </LineString>
    </Placemark>
  </Document>
</kml>`

func writeActivity(t *testing.T, root, folder, id, record string, kml string) {
	t.Helper()
	dir := filepath.Join(root, folder, "traces", id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if record != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), []byte(record), 0o644))
	}
	if kml != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, id+".kml"), []byte(kml), 0o644))
	}
}

func TestLoadPilot(t *testing.T) {
	root := t.TempDir()

	writeActivity(t, root, "alice", "100",
		`{"num_activite": "100", "pilote": "alice", "site": "Idikel"}`, sampleKML)
	writeActivity(t, root, "alice", "200",
		`{"num_activite": "200", "pilote": "alice"}`, "")
	// directory without a record file is skipped with a warning
	writeActivity(t, root, "alice", "300", "", "")

	src := New(root, logger.Nop())
	records, coords, err := src.LoadPilot("alice")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0][models.KeyPilot])

	require.Len(t, coords, 1)
	coord, ok := coords[100]
	require.True(t, ok)
	assert.InDelta(t, 1.234, coord.Longitude, 1e-9)
	assert.InDelta(t, 45.678, coord.Latitude, 1e-9)

	_, ok = coords[200]
	assert.False(t, ok, "activities without a trace get no coordinate entry")
}

func TestLoadPilotMissingFolder(t *testing.T) {
	src := New(t.TempDir(), logger.Nop())
	records, coords, err := src.LoadPilot("nobody")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, coords)
}

func TestLoadPilotIgnoresNonActivityEntries(t *testing.T) {
	root := t.TempDir()
	writeActivity(t, root, "alice", "100",
		`{"num_activite": "100"}`, "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "alice", "traces", "notanid"), 0o755))

	src := New(root, logger.Nop())
	records, _, err := src.LoadPilot("alice")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFirstKMLCoordinate(t *testing.T) {
	lon, lat := FirstKMLCoordinate([]byte(sampleKML))
	assert.InDelta(t, 1.234, lon, 1e-9)
	assert.InDelta(t, 45.678, lat, 1e-9)
}

func TestFirstKMLCoordinateDegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not xml", "garbage"},
		{"no coordinates element", `<kml><Document></Document></kml>`},
		{"empty coordinates", `<kml><coordinates>  </coordinates></kml>`},
		{"malformed tuple", `<kml><coordinates>abc,def</coordinates></kml>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lon, lat := FirstKMLCoordinate([]byte(tt.data))
			assert.Equal(t, 0.0, lon)
			assert.Equal(t, 0.0, lat)
		})
	}
}

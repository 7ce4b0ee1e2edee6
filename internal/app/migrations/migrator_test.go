package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	m := NewMigrator(nil)
	names, err := m.Versions()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "sql/001_documents.sql", names[0])
	assert.Equal(t, "001", versionOf(names[0]))
}

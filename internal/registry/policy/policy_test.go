package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBareTable(t *testing.T) {
	table, err := Parse([]byte(`{
		"students": {"POST": ["admin"], "get": ["admin", "user"]},
		"Schedule": {"DELETE": ["admin"]}
	}`))
	require.NoError(t, err)

	require.Equal(t, []string{"admin"}, table.RolesFor("students", "POST"))
	require.Equal(t, []string{"admin", "user"}, table.RolesFor("students", "get"))
	require.Equal(t, []string{"admin"}, table.RolesFor("schedule", "DELETE"))
}

func TestParseEnvelope(t *testing.T) {
	table, err := Parse([]byte(`{"roles": {"gradelog": {"PATCH": ["admin"]}}}`))
	require.NoError(t, err)

	require.Equal(t, []string{"admin"}, table.RolesFor("gradelog", "PATCH"))
}

func TestMissingEntriesArePermissive(t *testing.T) {
	table, err := Parse([]byte(`{"students": {"POST": ["admin"]}}`))
	require.NoError(t, err)

	require.Empty(t, table.RolesFor("students", "GET"))
	require.Empty(t, table.RolesFor("teachers", "POST"))

	var nilTable Table
	require.Empty(t, nilTable.RolesFor("students", "POST"))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"subjects": {"DELETE": ["admin"]}}`), 0o600))

	table, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"admin"}, table.RolesFor("subjects", "DELETE"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

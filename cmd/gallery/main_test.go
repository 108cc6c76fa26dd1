package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/gallery/cmd/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const collectionCSV = "Object Number,Is Highlight,Object ID,Department,Title,Culture,Artist Display Name,Object Date,Object Begin Date,Object End Date,Medium\n" +
	"29.100.5,True,436121,European Paintings,View of Toledo,,El Greco,ca. 1599,1599,1600,Oil on canvas\n" +
	"29.100.113,False,436965,European Paintings,Bridge over a Pond of Water Lilies,,Claude Monet,1899,1899,1899,Oil on canvas\n" +
	"29.100.113,False,436965,European Paintings,Bridge over a Pond of Water Lilies,,Claude Monet,1899,1899,1899,Oil on canvas\n" +
	"17.190.2055,True,45734,Asian Art,Tea bowl,Japan,,17th century,1600,1699,Stoneware\n" +
	"x,False,,Asian Art,No ID,,,,,,\n"

// testMain returns a Main that uses a temporary database and no
// configuration files.
func testMain(t *testing.T) (*main.Main, string) {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.ConfigPaths = nil
	return m, m.DBPath
}

func run(t *testing.T, m *main.Main, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// importCollection imports collectionCSV into dbPath.
func importCollection(t *testing.T, dbPath string) {
	t.Helper()
	m, _ := testMain(t)
	m.DBPath = dbPath
	_, _, err := run(t, m, "import", writeFile(t, "objects.csv", collectionCSV))
	require.NoError(t, err)
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, dbPath := testMain(t)
			stdout, stderr, err := run(t, m, tt.args...)

			require.NoError(t, err)
			assert.Contains(t, stdout, "Usage: gallery")
			assert.Contains(t, stdout, "Commands:")
			assert.Empty(t, stderr)

			_, statErr := os.Stat(dbPath)
			assert.True(t, os.IsNotExist(statErr), "database file should not be created for help")
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m, _ := testMain(t)
	stdout, _, err := run(t, m)

	require.Error(t, err)
	assert.Contains(t, stdout, "Usage: gallery")
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("import reports inserted and duplicate objects", func(t *testing.T) {
		t.Parallel()

		m, _ := testMain(t)
		stdout, _, err := run(t, m, "import", writeFile(t, "objects.csv", collectionCSV))

		require.NoError(t, err)
		assert.Contains(t, stdout, "Imported 3 objects (4 read, 1 duplicates, 1 invalid)")
	})

	t.Run("search takes a location query string", func(t *testing.T) {
		t.Parallel()

		m, dbPath := testMain(t)
		importCollection(t, dbPath)

		stdout, _, err := run(t, m, "search", "q=monet&highlight=false")
		require.NoError(t, err)
		assert.Contains(t, stdout, "436965")
		assert.Contains(t, stdout, "Bridge over a Pond of Water Lilies")
		assert.NotContains(t, stdout, "View of Toledo")
		assert.Contains(t, stdout, "Page 1 of 1 (1 objects)")
	})

	t.Run("search defaults to highlights", func(t *testing.T) {
		t.Parallel()

		m, dbPath := testMain(t)
		importCollection(t, dbPath)

		stdout, _, err := run(t, m, "search")
		require.NoError(t, err)
		assert.Contains(t, stdout, "View of Toledo")
		assert.Contains(t, stdout, "Tea bowl")
		assert.NotContains(t, stdout, "Monet")
	})

	t.Run("departments lists distinct departments", func(t *testing.T) {
		t.Parallel()

		m, dbPath := testMain(t)
		importCollection(t, dbPath)

		stdout, _, err := run(t, m, "departments")
		require.NoError(t, err)
		assert.Equal(t, "Asian Art\nEuropean Paintings\n", stdout)
	})

	t.Run("object shows details", func(t *testing.T) {
		t.Parallel()

		m, dbPath := testMain(t)
		importCollection(t, dbPath)

		stdout, _, err := run(t, m, "object", "45734")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Tea bowl")
		assert.Contains(t, stdout, "Japan")
		assert.Contains(t, stdout, "Highlight")
	})

	t.Run("object reports missing objects", func(t *testing.T) {
		t.Parallel()

		m, dbPath := testMain(t)
		importCollection(t, dbPath)

		_, stderr, err := run(t, m, "object", "1")
		require.Error(t, err)
		assert.Contains(t, stderr, "object 1 not found")
	})

	t.Run("database path can come from a config file", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "configured.db")
		importCollection(t, dbPath)

		m, _ := testMain(t)
		m.ConfigPaths = []string{writeFile(t, "config.toml", "db = '"+dbPath+"'\n")}

		stdout, _, err := run(t, m, "departments")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Asian Art")
	})
}

func TestRun_API(t *testing.T) {
	t.Parallel()

	t.Run("import cannot use a remote API", func(t *testing.T) {
		t.Parallel()

		m, dbPath := testMain(t)
		_, _, err := run(t, m, "--api", "http://127.0.0.1:1", "import", writeFile(t, "objects.csv", collectionCSV))

		require.Error(t, err)
		_, statErr := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(statErr), "database file should not be created")
	})
}

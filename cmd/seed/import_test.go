package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/app"
)

const dataset = `[
  {"quoteText": "Be yourself; everyone else is already taken.", "quoteAuthor": "Oscar Wilde", "quoteGenre": "inspiration"},
  {"quoteText": "The unexamined life is not worth living.", "quoteAuthor": "Socrates", "quoteGenre": "philosophy"},
  {"quoteText": "Talk is cheap. Show me the code.", "quoteAuthor": "Linus Torvalds", "quoteGenre": "programming"}
]`

func writeDataset(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quotes.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// executeImport runs the import command with args and returns its stdout.
// A dry run never connects, so the default mongo settings are enough.
func executeImport(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("APP_STORE_DRIVER", "mongo")
	t.Setenv("APP_LOG_LEVEL", "error")

	var out bytes.Buffer

	cmd := newImportCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestImportCmd_DryRun(t *testing.T) {
	path := writeDataset(t, dataset)

	out, err := executeImport(t, "--file", path, "--dry-run", "--batch-size", "2", "--workers", "2")
	require.NoError(t, err)

	var result app.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, app.ImportResult{Inserted: 3, Total: 3}, result)
}

func TestImportCmd_DryRunWithDrop(t *testing.T) {
	path := writeDataset(t, dataset)

	out, err := executeImport(t, "--file", path, "--dry-run", "--drop")
	require.NoError(t, err)

	var result app.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, app.ImportResult{Inserted: 3, Total: 3}, result)
}

func TestImportCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr string
	}{
		{
			name:    "file flag is required",
			args:    func(*testing.T) []string { return []string{"--dry-run"} },
			wantErr: `required flag(s) "file" not set`,
		},
		{
			name: "missing file",
			args: func(t *testing.T) []string {
				return []string{"--file", filepath.Join(t.TempDir(), "absent.json"), "--dry-run"}
			},
			wantErr: "opening dataset",
		},
		{
			name: "not a JSON array",
			args: func(t *testing.T) []string {
				return []string{"--file", writeDataset(t, `{"quoteText": "x"}`), "--dry-run"}
			},
			wantErr: "reading dataset",
		},
		{
			name: "empty dataset names the validate step",
			args: func(t *testing.T) []string {
				return []string{"--file", writeDataset(t, `[]`), "--dry-run"}
			},
			wantErr: "validate step",
		},
		{
			name: "record without author names the validate step",
			args: func(t *testing.T) []string {
				return []string{"--file", writeDataset(t, `[{"quoteText": "x", "quoteGenre": "y"}]`), "--dry-run"}
			},
			wantErr: "quoteAuthor",
		},
		{
			name: "negative workers",
			args: func(t *testing.T) []string {
				return []string{"--file", writeDataset(t, dataset), "--dry-run", "--workers", "-1"}
			},
			wantErr: "validate step",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeImport(t, tt.args(t)...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, out)
		})
	}
}

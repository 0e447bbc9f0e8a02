package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Use(t *testing.T) {
	assert.Equal(t, "extract [analyzer] [file]", extractCmd.Use)
}

func TestExtractCmd_HasPagesFlag(t *testing.T) {
	flag := extractCmd.Flags().Lookup("pages")
	require.NotNil(t, flag, "pages flag should exist")
	assert.Equal(t, "p", flag.Shorthand)
}

func TestExtractCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	report := writeReport(t, e801Report)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", "Roche e801", report})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "gluc")
	assert.Contains(t, buf.String(), "qty 434")
	assert.Contains(t, buf.String(), "lot 118832")
}

func TestExtractCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	report := writeReport(t, e801Report)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", "--json", "Roche e801", report})
	defer func() {
		rootCmd.SetArgs(nil)
		extractJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"AnalyzerKey\"")
	assert.Contains(t, buf.String(), "\"gluc\"")
}

func TestExtractCmd_UnknownAnalyzer(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	report := writeReport(t, e801Report)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "Mystery 9000", report})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "extraction failed")
}

func TestExtractCmd_UnknownAnalyzerWithFallback(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	report := writeReport(t, e801Report)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", "--fallback", "Mystery 9000", report})
	defer func() {
		rootCmd.SetArgs(nil)
		extractFallback = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "generic fallback")
}

func TestExtractCmd_NoDefaultAnalyzer(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	report := writeReport(t, e801Report)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", report})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no analyzer given")
}

func TestExtractCmd_ServiceNotConfigured(t *testing.T) {
	oldService := extractionService
	extractionService = nil
	defer func() {
		extractionService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "Roche e801", "report.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "extraction service not configured")
}

package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(f float64) *float64 { return &f }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Sessions: []SessionImport{
			{Item: "Two Sum", Language: "python", Date: "2025-03-01", Hours: ptrFloat(1)},
		},
	}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validMinimalSchema()))
}

func TestValidateImportSchema_DefaultsSupplyLanguage(t *testing.T) {
	schema := &ImportSchema{
		Defaults: &DefaultsImport{Language: "go", Type: "project", Status: "in_progress"},
		Sessions: []SessionImport{
			{Item: "Worker Pool", Date: "2025-03-01", Hours: ptrFloat(2), Difficulty: "advanced"},
		},
	}
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_CollectsAllErrors(t *testing.T) {
	schema := &ImportSchema{
		Defaults: &DefaultsImport{Type: "kata", Status: "done-ish"},
		Sessions: []SessionImport{
			{Item: "!!!", Date: "03/01/2025", Hours: ptrFloat(-1)},
			{Item: "Two Sum", Language: "go", Type: "quiz", Status: "sleeping", Difficulty: "impossible"},
		},
	}

	errs := ValidateImportSchema(schema)
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	joined := strings.Join(msgs, "\n")

	for _, want := range []string{
		"defaults.type",
		"defaults.status",
		"sessions[0].item",
		"sessions[0].language is required",
		"sessions[0].date: invalid date format",
		"sessions[0].hours must be >= 0",
		"sessions[1].type",
		"sessions[1].date is required",
		"sessions[1].hours is required",
		"sessions[1].status",
		"sessions[1].difficulty",
	} {
		assert.Contains(t, joined, want)
	}
	assert.Len(t, errs, 11)
}

func TestValidateImportSchema_EmptyFile(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one session")
}

func TestParseImportSchema_YAMLAndJSON(t *testing.T) {
	yamlDoc := `
defaults:
  language: go
sessions:
  - item: Worker Pool
    date: 2025-03-01
    hours: 1.5
    tags: [goroutines]
`
	schema, err := ParseImportSchema([]byte(yamlDoc))
	require.NoError(t, err)
	require.Len(t, schema.Sessions, 1)
	assert.Equal(t, "go", schema.Defaults.Language)
	assert.Equal(t, 1.5, *schema.Sessions[0].Hours)
	assert.Equal(t, []string{"goroutines"}, schema.Sessions[0].Tags)

	jsonDoc := `{"sessions": [{"item": "Two Sum", "language": "python", "date": "2025-03-02", "hours": 0}]}`
	schema, err = ParseImportSchema([]byte(jsonDoc))
	require.NoError(t, err)
	require.Len(t, schema.Sessions, 1)
	assert.Equal(t, 0.0, *schema.Sessions[0].Hours, "explicit zero differs from missing")
}

func TestParseImportSchema_RejectsUnknownFields(t *testing.T) {
	_, err := ParseImportSchema([]byte("sessions:\n  - item: Two Sum\n    minutes: 30\n"))
	assert.Error(t, err)
}

package script_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-lending-go/library/script"
)

func sampleReport() script.Report {
	return script.Report{
		Steps: []script.Step{
			{
				Line:   2,
				Op:     script.OpAcquire,
				Alias:  "$dune",
				Status: script.StatusOK,
				ID:     "0b6f1b5c-6d6e-4b0e-9a51-4a0f2d3c1e01",
				Change: "BookAcquired",
			},
			{
				Line:      10,
				Op:        script.OpBegin,
				Status:    script.StatusFailed,
				ErrorKind: "existing_loan",
				Error:     "book is on loan",
				Err:       errors.New("book is on loan"),
			},
			{
				Line:   11,
				Op:     script.OpQueue,
				Status: script.StatusOK,
				Result: map[string]int{"count": 0},
			},
		},
		Succeeded: 2,
		Failed:    1,
	}
}

func Test_Report_WriteText_Golden(t *testing.T) {
	// arrange
	var buffer bytes.Buffer

	// act
	err := sampleReport().WriteText(&buffer)

	// assert
	require.NoError(t, err)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report_text", buffer.Bytes())
}

func Test_Report_WriteYAML(t *testing.T) {
	// arrange
	var buffer bytes.Buffer

	// act
	err := sampleReport().WriteYAML(&buffer)

	// assert
	require.NoError(t, err)
	assert.NotContains(t, buffer.String(), "{")

	var decoded struct {
		Steps []struct {
			Line      int            `yaml:"line"`
			Op        string         `yaml:"op"`
			Alias     string         `yaml:"alias"`
			ID        string         `yaml:"id"`
			ErrorKind string         `yaml:"error_kind"`
			Result    map[string]int `yaml:"result"`
		} `yaml:"steps"`
		Succeeded int `yaml:"succeeded"`
		Failed    int `yaml:"failed"`
	}
	require.NoError(t, yaml.Unmarshal(buffer.Bytes(), &decoded))
	require.Len(t, decoded.Steps, 3)
	assert.Equal(t, 2, decoded.Steps[0].Line)
	assert.Equal(t, "$dune", decoded.Steps[0].Alias)
	assert.Equal(t, "0b6f1b5c-6d6e-4b0e-9a51-4a0f2d3c1e01", decoded.Steps[0].ID)
	assert.Equal(t, "existing_loan", decoded.Steps[1].ErrorKind)
	assert.Equal(t, map[string]int{"count": 0}, decoded.Steps[2].Result)
	assert.Equal(t, 2, decoded.Succeeded)
	assert.Equal(t, 1, decoded.Failed)
}

func Test_Report_WriteYAML_QuotesStringsThatLookLikeNumbers(t *testing.T) {
	// arrange
	report := script.Report{Steps: []script.Step{{Line: 1, Op: script.OpAcquire, Status: script.StatusOK, Change: "1984"}}}
	var buffer bytes.Buffer

	// act
	err := report.WriteYAML(&buffer)

	// assert
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buffer.Bytes(), &decoded))
	steps, ok := decoded["steps"].([]any)
	require.True(t, ok)
	step, ok := steps[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1984", step["change"])
}

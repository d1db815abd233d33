package script

import (
	"fmt"
	"io"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// Step statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Step is the outcome of one statement.
type Step struct {
	Line      int    `json:"line"`
	Op        string `json:"op"`
	Alias     string `json:"alias,omitempty"`
	Status    string `json:"status"`
	ID        string `json:"id,omitempty"`
	Change    string `json:"change,omitempty"`
	Result    any    `json:"result,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
	Err       error  `json:"-"`
}

func (s Step) succeeded(result any) Step {
	s.Status = StatusOK

	if handlerResult, ok := result.(shell.HandlerResult); ok {
		s.Change = handlerResult.ChangeType
		return s
	}

	s.Result = result

	return s
}

func (s Step) failed(err error) Step {
	s.Status = StatusFailed
	s.Err = err
	s.ErrorKind = core.KindOf(err)
	s.Error = err.Error()

	return s
}

// Report collects the steps of a run.
type Report struct {
	Steps     []Step `json:"steps"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

func (r *Report) add(step Step) {
	r.Steps = append(r.Steps, step)

	if step.Err != nil {
		r.Failed++
		return
	}

	r.Succeeded++
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// WriteYAML writes the report as YAML with the field names and field order of WriteJSON.
func (r Report) WriteYAML(w io.Writer) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(r)
	if err != nil {
		return err
	}

	// JSON is valid YAML, decoding it into a node keeps the field order.
	var document yaml.Node
	if err = yaml.Unmarshal(data, &document); err != nil {
		return err
	}

	blockStyle(&document)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err = encoder.Encode(&document); err != nil {
		return err
	}

	return encoder.Close()
}

func blockStyle(node *yaml.Node) {
	node.Style = 0

	for _, child := range node.Content {
		blockStyle(child)
	}
}

// WriteText writes one aligned line per step followed by a summary.
// Query results are rendered as compact JSON.
func (r Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, step := range r.Steps {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", step.Line, step.Op, step.Status, describe(step)); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d succeeded, %d failed\n", r.Succeeded, r.Failed)

	return err
}

func describe(step Step) string {
	switch {
	case step.Err != nil:
		return fmt.Sprintf("%s: %s", step.ErrorKind, step.Error)
	case step.Result != nil:
		data, err := jsoniter.ConfigFastest.Marshal(step.Result)
		if err != nil {
			return err.Error()
		}

		return string(data)
	case step.ID != "" && step.Alias != "":
		return fmt.Sprintf("%s %s=%s", step.Change, step.Alias, step.ID)
	case step.ID != "":
		return fmt.Sprintf("%s %s", step.Change, step.ID)
	default:
		return step.Change
	}
}

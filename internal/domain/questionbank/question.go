package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ID identifies a question across the bank and the history store.
// Sources written by hand usually number their records, so both
// `"id": 7` and `"id": "q-7"` decode into an ID.
type ID string

func (i ID) String() string { return string(i) }

// numeric reports whether the ID is the canonical decimal form of an integer.
func (i ID) numeric() (int64, bool) {
	n, err := strconv.ParseInt(string(i), 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != string(i) {
		return 0, false
	}
	return n, true
}

func (i ID) MarshalJSON() ([]byte, error) {
	if n, ok := i.numeric(); ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(i))
}

func (i *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*i = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("question id: %w", err)
	}
	*i = ID(n.String())
	return nil
}

func (i ID) MarshalYAML() (any, error) {
	if n, ok := i.numeric(); ok {
		return n, nil
	}
	return string(i), nil
}

func (i *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("question id: expected scalar, got kind %d at line %d", node.Kind, node.Line)
	}
	*i = ID(node.Value)
	return nil
}

// Question is one flashcard. It is never modified once a bank holds it.
type Question struct {
	ID          ID     `json:"id" yaml:"id"`
	Question    string `json:"question" yaml:"question"`
	Answer      string `json:"answer" yaml:"answer"`
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

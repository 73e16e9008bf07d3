// Package source loads question records from files and URLs, and appends
// new records to file-backed sources on behalf of the editor.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
)

// Source yields the question records of one location.
type Source interface {
	Load(ctx context.Context) ([]questionbank.Question, error)
	Location() string
}

// Appender is a Source that can take new records.
type Appender interface {
	Source
	Append(ctx context.Context, draft Draft) (questionbank.Question, error)
}

// ErrReadOnly is returned when no source can take new records.
var ErrReadOnly = errors.New("no question source accepts new records")

// Draft is a question record to append. ID is normally left empty for the
// appender to choose; a preset ID must not already be in use.
type Draft struct {
	ID          questionbank.ID `json:"id,omitempty"`
	Question    string          `json:"question"`
	Answer      string          `json:"answer"`
	Explanation string          `json:"explanation,omitempty"`
}

// SourceError is returned when a location cannot be read or parsed.
type SourceError struct {
	Location string
	Wrapped  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("question source %s: %v", e.Location, e.Wrapped)
}

func (e *SourceError) Unwrap() error {
	return e.Wrapped
}

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf guesses the encoding from a file name or URL path.
func FormatOf(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func decode(format Format, data []byte) ([]questionbank.Question, error) {
	var questions []questionbank.Question
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &questions)
	default:
		err = json.Unmarshal(data, &questions)
	}
	if err != nil {
		return nil, errors.Wrap(err, "malformed question data")
	}
	return questions, nil
}

func encode(format Format, questions []questionbank.Question) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(questions)
	}
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Open picks a Source for location: http(s) URLs are fetched with client,
// anything else is treated as a file path.
func Open(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTP(location, client)
	}
	return NewFile(location)
}

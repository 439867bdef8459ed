// Package format holds the CLI output formatters.
package format

import (
	"encoding/json"
	"io"
)

// Formatter renders one payload to a writer.
type Formatter interface {
	Write(w io.Writer, payload any) error
}

// JSONFormatter emits one JSON document per payload.
type JSONFormatter struct{}

func (f JSONFormatter) Write(w io.Writer, payload any) error {
	return json.NewEncoder(w).Encode(payload)
}

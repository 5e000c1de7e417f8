// Package sessionstore decodes Firefox session store files: the mozLz4
// container and the JSON schema inside it. It stays close to the on-disk
// format; turning a Store into a clean document is the loader's job.
package sessionstore

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Decode stages, in the order they run
const (
	StageRead       = "read"
	StageDecompress = "decompress"
	StageParse      = "parse"
)

// DecodeError reports which stage of decoding a session store file failed
type DecodeError struct {
	Path  string
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Store mirrors the session store JSON. Only the fields the viewer consumes
// are declared; everything else in the file is ignored.
type Store struct {
	Windows        []RawWindow `json:"windows"`
	ClosedWindows  []RawWindow `json:"_closedWindows"`
	SelectedWindow int         `json:"selectedWindow"` // 1-based
}

// RawWindow is one window as stored on disk
type RawWindow struct {
	Tabs     []RawTab `json:"tabs"`
	Selected int      `json:"selected"` // 1-based index into Tabs
}

// RawTab is one tab as stored on disk. Entries can be empty for tabs that
// were never loaded in the recorded session; Index is 1-based.
type RawTab struct {
	Entries        []RawEntry `json:"entries"`
	Index          int        `json:"index"`
	LastAccessed   int64      `json:"lastAccessed"`
	Pinned         bool       `json:"pinned"`
	Image          string     `json:"image"`
	UserTypedValue string     `json:"userTypedValue"`
}

// RawEntry is one history entry as stored on disk
type RawEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Parse unmarshals decompressed session store JSON. Comments and trailing
// commas are tolerated so hand-edited or annotated dumps still load.
func Parse(data []byte) (*Store, error) {
	var store Store
	if err := json.Unmarshal(jsonc.ToJSON(data), &store); err != nil {
		return nil, fmt.Errorf("invalid session JSON: %w", err)
	}
	return &store, nil
}

// Decode reads, decompresses and parses a session store file. Failures carry
// the stage they happened in so callers can report "Reading input file"
// versus "Parsing session data" accurately.
func Decode(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Stage: StageRead, Err: err}
	}

	plain, err := Decompress(data)
	if err != nil {
		return nil, &DecodeError{Path: path, Stage: StageDecompress, Err: err}
	}

	store, err := Parse(plain)
	if err != nil {
		return nil, &DecodeError{Path: path, Stage: StageParse, Err: err}
	}

	return store, nil
}

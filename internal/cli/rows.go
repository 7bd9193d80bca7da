package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/SscSPs/receivables_app/internal/dto"
)

// rowsFile is the accepted file layout: either {"rows": [...], "fingerprint": "..."}
// or a bare array of rows.
type rowsFile struct {
	Rows        []dto.ImportRowRequest `json:"rows"`
	Fingerprint string                 `json:"fingerprint,omitempty"`
}

// readRows loads import rows from path, or from stdin when path is "-".
func readRows(path string, stdin io.Reader) (rowsFile, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return rowsFile{}, fmt.Errorf("reading rows: %w", err)
	}

	data = bytes.TrimSpace(data)
	var f rowsFile
	if bytes.HasPrefix(data, []byte("[")) {
		err = json.Unmarshal(data, &f.Rows)
	} else {
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return rowsFile{}, fmt.Errorf("decoding rows: %w", err)
	}
	if len(f.Rows) == 0 {
		return rowsFile{}, fmt.Errorf("no rows in %s", path)
	}
	return f, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

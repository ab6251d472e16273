package csv

import "io"

// ObjectScanner treats the first row as a header and yields each
// following row as a map keyed by the header cells.
//
// Cells are paired positionally: a row shorter than the header leaves
// the missing keys mapped to the empty string, and cells beyond the
// header's width are dropped.
//
// Example:
//
//	scanner, _ := csv.NewObjectScanner(strings.NewReader("name,age\nAlice,30"), csv.ReaderOptions{})
//	for scanner.Scan() {
//	    obj := scanner.Object()
//	    fmt.Println(obj["name"], obj["age"])
//	}
type ObjectScanner struct {
	rows       *RowScanner
	header     []string
	headerRead bool
	obj        map[string]string
}

// NewObjectScanner creates an ObjectScanner reading from r.
func NewObjectScanner(r io.Reader, opts ReaderOptions) (*ObjectScanner, error) {
	rows, err := NewRowScanner(r, opts)
	if err != nil {
		return nil, err
	}
	return &ObjectScanner{rows: rows}, nil
}

// Scan advances to the next object. The first Scan consumes two rows:
// the header and the first data row. It returns false at the end of the
// stream or on error; check Err afterwards.
func (s *ObjectScanner) Scan() bool {
	if !s.headerRead {
		if !s.rows.Scan() {
			return false
		}
		s.header = s.rows.Row()
		s.headerRead = true
	}
	if !s.rows.Scan() {
		return false
	}
	row := s.rows.Row()
	obj := make(map[string]string, len(s.header))
	for i, key := range s.header {
		if i < len(row) {
			obj[key] = row[i]
		} else {
			obj[key] = ""
		}
	}
	s.obj = obj
	return true
}

// Object returns the object produced by the last successful Scan.
func (s *ObjectScanner) Object() map[string]string {
	return s.obj
}

// Headers returns the header row. It is nil until the first Scan.
func (s *ObjectScanner) Headers() []string {
	return s.header
}

// Err returns the terminal error, if any. It returns nil at a clean end
// of stream.
func (s *ObjectScanner) Err() error {
	return s.rows.Err()
}

// Stats returns the parser's activity counters.
func (s *ObjectScanner) Stats() Stats {
	return s.rows.Stats()
}

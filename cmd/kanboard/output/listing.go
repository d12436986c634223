package output

import "strings"

// Listing is a list of records that prints in every format: an aligned
// table for text, one line per record for tsv, and Items (or the records
// keyed by header) for json and yaml.
type Listing struct {
	Header  []string
	Records [][]string
	// Items is the structured payload; nil falls back to the records
	Items interface{}
	// Display rewrites a record for the text table only
	Display func(record []string) []string
}

// Rows returns the records unchanged
func (l Listing) Rows() [][]string {
	return l.Records
}

// Len returns the number of records
func (l Listing) Len() int {
	return len(l.Records)
}

func (l Listing) displayRows() [][]string {
	if l.Display == nil {
		return l.Records
	}
	rows := make([][]string, len(l.Records))
	for i, record := range l.Records {
		rows[i] = l.Display(record)
	}
	return rows
}

// payload is what json and yaml encode
func (l Listing) payload() interface{} {
	if l.Items != nil {
		return l.Items
	}
	keys := make([]string, len(l.Header))
	for i, h := range l.Header {
		keys[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
	}
	out := make([]map[string]string, 0, len(l.Records))
	for _, record := range l.Records {
		item := make(map[string]string, len(keys))
		for i, key := range keys {
			if i < len(record) {
				item[key] = record[i]
			}
		}
		out = append(out, item)
	}
	return out
}

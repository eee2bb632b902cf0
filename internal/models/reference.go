package models

// ReferenceTable is a raw tabular view of the MCC reference data as loaded
// from a file. Column resolution (status and code aliases) happens in the
// classifier, so the loader does not need to know the schema up front.
type ReferenceTable struct {
	Columns []string
	Rows    [][]string
}

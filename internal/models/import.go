package models

import "io"

// RowError describes why a single CSV row was not imported
type RowError struct {
	Line    int    `json:"line"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportResult is the aggregate outcome of one import call
type ImportResult struct {
	SuccessCount int        `json:"success_count"`
	ErrorCount   int        `json:"error_count"`
	Errors       []RowError `json:"errors,omitempty"`
}

// Total returns the number of rows the import attempted
func (r *ImportResult) Total() int {
	return r.SuccessCount + r.ErrorCount
}

// Upload is a file received for import
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

package io

// RecordReader turns a data file into the ordered records that become test cases.
type RecordReader interface {
	// Read decodes the file at path. The returned slice may be empty; callers
	// decide whether an empty file is an error.
	Read(path string) ([]Record, error)
}

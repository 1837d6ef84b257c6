package district

import (
	_ "embed"
)

// SampleName identifies the bundled dataset in cache keys and logs.
const SampleName = "sample"

//go:embed data/sample.csv
var sampleCSV []byte

// Sample returns a copy of the bundled sample dataset as CSV bytes.
func Sample() []byte {
	out := make([]byte, len(sampleCSV))
	copy(out, sampleCSV)
	return out
}

// Package schemas embeds the JSON Schemas used to validate externally supplied files.
package schemas

import "embed"

// Schema file names.
const (
	LinearModel = "linear_model.schema.json"
	TagWeights  = "tag_weights.schema.json"
	JobImport   = "job_import.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of an embedded schema.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists every embedded schema.
func Names() []string {
	return []string{LinearModel, TagWeights, JobImport}
}

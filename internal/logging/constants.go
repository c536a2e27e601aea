package logging

// Field names used across the rewriter's structured log output.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldStep       = "step"
	FieldEntry      = "entry"
	FieldPath       = "element_path"
	FieldValue      = "value"
	FieldNamespace  = "namespace"
	FieldReference  = "reference"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldWorkers    = "workers"
)

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldConstants(t *testing.T) {
	assert.Equal(t, "file_path", FieldFile)
	assert.Equal(t, "input_file", FieldInputFile)
	assert.Equal(t, "output_file", FieldOutputFile)
	assert.Equal(t, "step", FieldStep)
	assert.Equal(t, "entry", FieldEntry)
	assert.Equal(t, "element_path", FieldPath)
	assert.Equal(t, "value", FieldValue)
	assert.Equal(t, "count", FieldCount)
	assert.Equal(t, "error", FieldError)
}

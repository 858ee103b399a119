package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalStrings(t *testing.T) {
	assert.Equal(t, "[]", marshalStrings(nil))
	assert.Equal(t, "[]", marshalStrings([]string{}))
	assert.Equal(t, `["go","sql"]`, marshalStrings([]string{"go", "sql"}))
}

func TestUnmarshalStrings(t *testing.T) {
	assert.Equal(t, []string{"go", "sql"}, unmarshalStrings(`["go","sql"]`))
	assert.Equal(t, []string{}, unmarshalStrings(""))
	assert.Equal(t, []string{}, unmarshalStrings("null"))
	assert.Equal(t, []string{}, unmarshalStrings("{broken"))
}

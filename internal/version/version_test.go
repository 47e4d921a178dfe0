package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_IncludesAllFields(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "dev (commit unknown, built unknown)", String())
}

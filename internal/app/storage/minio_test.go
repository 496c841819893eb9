package storage

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	now := time.Unix(1700000000, 0)
	name := ObjectName(42, "html", now)
	assert.Regexp(t, regexp.MustCompile(`^orders/42/content_[0-9a-f-]{8}_1700000000\.html$`), name)
	assert.NotEqual(t, name, ObjectName(42, "html", now))
}

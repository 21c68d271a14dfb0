package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, Config{RetryBaseDelay: "500ms"}.RetryDelay())
	assert.Equal(t, 2*time.Second, Config{RetryBaseDelay: "soon"}.RetryDelay())
	assert.Equal(t, 2*time.Second, Config{RetryBaseDelay: "-1s"}.RetryDelay())
}

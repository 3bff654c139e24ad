package logger

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	bytes.Buffer
}

func (b *syncBuffer) Sync() error { return nil }

func TestNewTeesToCloudWatchWriter(t *testing.T) {
	buf := &syncBuffer{}
	log, err := New("production", buf)
	require.NoError(t, err)

	log.Info("seeded")
	_ = log.Sync()

	out := buf.String()
	assert.True(t, strings.Contains(out, `"msg":"seeded"`), out)
	assert.True(t, strings.Contains(out, `"level":"INFO"`), out)
	assert.True(t, strings.Contains(out, `"timestamp"`), out)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	assert.Equal(t, "unknown", RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "unknown", RequestID(c))

	c.Request = httptest.NewRequest("GET", "/", nil).WithContext(WithRequestID(context.Background(), "from-request"))
	assert.Equal(t, "from-request", RequestID(c))

	c.Set(RequestIDKey, "from-gin")
	assert.Equal(t, "from-gin", RequestID(c))
}

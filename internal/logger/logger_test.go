package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(orig) })
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSetup(t *testing.T) {
	t.Cleanup(func() { Setup("info") })

	Setup("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	_, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	Setup("nonsense")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestWithContext(t *testing.T) {
	Setup("info")
	buf := capture(t)

	ctx := WithEmail(context.Background(), "ada@example.com")
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithProjectID(ctx, "p-1")

	WithContext(ctx).WithField("guid", "abc").Info("converted")

	entry := decode(t, buf)
	assert.Equal(t, "ada@example.com", entry["user"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "p-1", entry["project_id"])
	assert.Equal(t, "abc", entry["guid"])
	assert.Equal(t, "converted", entry["msg"])
}

func TestWithContext_Anonymous(t *testing.T) {
	Setup("info")
	buf := capture(t)

	//nolint:staticcheck // nil context is accepted
	WithContext(nil).WithError(errors.New("boom")).Warn("failed")

	entry := decode(t, buf)
	assert.Equal(t, "unknown", entry["user"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotContains(t, entry, "request_id")
}

func TestWithFields(t *testing.T) {
	Setup("info")
	buf := capture(t)

	WithContext(context.Background()).WithFields(map[string]interface{}{"marked": 2, "skipped": 1}).Info("done")

	entry := decode(t, buf)
	assert.Equal(t, float64(2), entry["marked"])
	assert.Equal(t, float64(1), entry["skipped"])
}

func TestValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ginCtx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ginCtx.Set(EmailKey, "gin@example.com")

	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"typed key", WithEmail(context.Background(), "ada@example.com"), "ada@example.com"},
		{"gin context set", ginCtx, "gin@example.com"},
		{"other package using the same name", context.WithValue(context.Background(), foreignKey(EmailKey), "x"), ""},
		{"missing", context.Background(), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.ctx, EmailKey))
		})
	}
}

type foreignKey string

func TestWithContext_GinContext(t *testing.T) {
	Setup("info")
	buf := capture(t)

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(EmailKey, "ada@example.com")
	c.Set(RequestIDKey, "req-2")

	WithContext(c).Info("handled")

	entry := decode(t, buf)
	assert.Equal(t, "ada@example.com", entry["user"])
	assert.Equal(t, "req-2", entry["request_id"])
}

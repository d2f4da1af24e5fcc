package fingerprint

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate("10.0.0.1", "Mozilla/5.0")
	b := Generate("10.0.0.1", "Mozilla/5.0")
	require.Equal(t, a, b)
}

func TestGenerateDistinguishesCallers(t *testing.T) {
	a := Generate("10.0.0.1", "Mozilla/5.0")
	b := Generate("10.0.0.2", "Mozilla/5.0")
	c := Generate("10.0.0.1", "curl/8.0")
	require.NotEqual(t, a, b)
	require.NotEqual(t, a, c)
}

func TestGenerateEmptyInput(t *testing.T) {
	require.NotPanics(t, func() {
		Generate("", "")
	})
}

func TestFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("User-Agent", "test-agent")
	c.Request.RemoteAddr = "192.168.1.5:12345"

	fp := FromRequest(c)
	require.Equal(t, Generate("192.168.1.5", "test-agent"), fp)
}

package tts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lucid_teaching_agent/logger"
)

func newTestRouter(p *Proxy) http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/tts", p.Handle)
	return r
}

func postTTS(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/tts", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestTTSMissingKey(t *testing.T) {
	p := NewProxy("", "", logger.NewNop())
	w := postTTS(t, newTestRouter(p), map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTTSEmptyText(t *testing.T) {
	p := NewProxy("key", "", logger.NewNop())
	w := postTTS(t, newTestRouter(p), map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTTSSynthesizeAndCache(t *testing.T) {
	var upstreamHits int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&upstreamHits, 1)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Cartesia-Version"))
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "hello world", payload["transcript"])
		w.Write([]byte("RIFF-fake-wav"))
	}))
	defer upstream.Close()

	p := NewProxy("key", "", logger.NewNop())
	p.apiURL = upstream.URL
	h := newTestRouter(p)

	w := postTTS(t, h, map[string]string{"text": "hello world"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/wav", w.Header().Get("Content-Type"))
	assert.Equal(t, "RIFF-fake-wav", w.Body.String())

	// second identical request is served from cache
	w = postTTS(t, h, map[string]string{"text": "hello world"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&upstreamHits))

	// a different voice is a different cache entry
	w = postTTS(t, h, map[string]string{"text": "hello world", "voice_id": "other-voice"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&upstreamHits))
}

func TestTTSUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	p := NewProxy("key", "", logger.NewNop())
	p.apiURL = upstream.URL

	w := postTTS(t, newTestRouter(p), map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

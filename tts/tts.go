// Package tts proxies narration-audio synthesis through Cartesia, keeping
// the API key server-side and caching audio bytes per narration.
package tts

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lucid_teaching_agent/logger"
)

const (
	cartesiaAPIURL     = "https://api.cartesia.ai/tts/bytes"
	cartesiaAPIVersion = "2025-04-16"
	cartesiaModel      = "sonic-3"
	defaultVoiceID     = "694f9389-aac1-45b6-b726-9d9369183238"
	sampleRate         = 44100
	maxCacheEntries    = 128
)

// Proxy converts narration text to WAV audio via the upstream API with an
// in-memory LRU byte cache in front.
type Proxy struct {
	apiKey  string
	voiceID string
	apiURL  string
	client  *http.Client
	cache   *lruCache
	log     *logger.Logger
}

func NewProxy(apiKey, voiceID string, log *logger.Logger) *Proxy {
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	return &Proxy{
		apiKey:  apiKey,
		voiceID: voiceID,
		apiURL:  cartesiaAPIURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   newLRUCache(maxCacheEntries),
		log:     log,
	}
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id,omitempty"`
}

// Handle serves POST /tts. A missing key or an upstream failure answers
// 503 so the client can fall back to browser speech synthesis.
func (p *Proxy) Handle(c *gin.Context) {
	if p.apiKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"detail": "TTS API key not configured, use browser TTS fallback.",
		})
		return
	}

	var req synthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Empty text."})
		return
	}
	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = p.voiceID
	}

	key := cacheKey(text, voiceID)
	if data, ok := p.cache.get(key); ok {
		p.log.Info("tts cache hit", "text", truncate(text, 40))
		c.Data(http.StatusOK, "audio/wav", data)
		return
	}

	data, err := p.synthesize(c.Request.Context(), text, voiceID)
	if err != nil {
		p.log.Error("tts synthesis failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"detail": "TTS API unreachable, use browser TTS fallback.",
		})
		return
	}
	p.cache.put(key, data)
	p.log.Info("tts generated", "text", truncate(text, 40), "bytes", len(data))
	c.Data(http.StatusOK, "audio/wav", data)
}

func (p *Proxy) synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	payload := map[string]any{
		"model_id":   cartesiaModel,
		"transcript": text,
		"voice":      map[string]string{"mode": "id", "id": voiceID},
		"output_format": map[string]any{
			"container":   "wav",
			"encoding":    "pcm_s16le",
			"sample_rate": sampleRate,
		},
		"language": "en",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Cartesia-Version", cartesiaAPIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("tts api returned %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(resp.Body)
}

func cacheKey(text, voiceID string) string {
	sum := sha256.Sum256([]byte(voiceID + "::" + text))
	return hex.EncodeToString(sum[:])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

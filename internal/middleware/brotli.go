package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// Bodies below this size ship uncompressed; the encoding overhead is not
// worth it for small JSON envelopes.
const brotliThreshold = 1024

// Brotli compresses responses for clients that advertise br support.
// WebSocket upgrades pass through untouched or the handshake would break.
func Brotli() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isWebSocketUpgrade(c.Request) || !clientAcceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		cw := &compressingWriter{
			ResponseWriter: c.Writer,
			br:             brotli.NewWriterLevel(c.Writer, brotli.DefaultCompression),
		}
		c.Writer = cw

		defer func() {
			if err := cw.finish(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Next()
	}
}

// compressingWriter buffers the body until it clears brotliThreshold, then
// commits to brotli encoding. Smaller bodies are replayed plain on finish.
type compressingWriter struct {
	gin.ResponseWriter
	br      *brotli.Writer
	pending []byte
	commit  sync.Once
	encoded bool
}

func (cw *compressingWriter) Write(p []byte) (int, error) {
	cw.pending = append(cw.pending, p...)
	if len(cw.pending) < brotliThreshold {
		return len(p), nil
	}

	cw.commit.Do(func() {
		cw.encoded = true
		h := cw.ResponseWriter.Header()
		h.Set("Content-Encoding", "br")
		h.Del("Content-Length")
	})

	n, err := cw.br.Write(cw.pending)
	cw.pending = cw.pending[:0]
	return n, err
}

func (cw *compressingWriter) WriteString(s string) (int, error) {
	return cw.Write([]byte(s))
}

func (cw *compressingWriter) finish() error {
	if cw.encoded {
		return cw.br.Close()
	}
	if len(cw.pending) == 0 {
		return nil
	}
	_, err := cw.ResponseWriter.Write(cw.pending)
	cw.pending = nil
	return err
}

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

func clientAcceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(strings.ToLower(enc)) == "br" {
			return true
		}
	}
	return false
}

package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

const brotliMinLength = 1024

type brotliWriter struct {
	gin.ResponseWriter
	writer     *brotli.Writer
	buf        []byte
	once       sync.Once
	compressed bool
}

func (bw *brotliWriter) Write(data []byte) (int, error) {
	bw.buf = append(bw.buf, data...)

	if len(bw.buf) >= brotliMinLength {
		bw.once.Do(func() {
			bw.compressed = true
			bw.ResponseWriter.Header().Set("Content-Encoding", "br")
			bw.ResponseWriter.Header().Del("Content-Length")
		})
		n, err := bw.writer.Write(bw.buf)
		bw.buf = bw.buf[:0]
		return n, err
	}

	return len(data), nil
}

func (bw *brotliWriter) WriteString(s string) (int, error) {
	return bw.Write([]byte(s))
}

// flush drains any buffered short response as plain text.
func (bw *brotliWriter) flush() error {
	if len(bw.buf) == 0 {
		return nil
	}
	_, err := bw.ResponseWriter.Write(bw.buf)
	bw.buf = bw.buf[:0]
	return err
}

// Brotli compresses responses over brotliMinLength bytes for clients that
// accept it. WebSocket upgrades pass through untouched — the handshake
// fails if the response is wrapped or buffered.
func Brotli() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}
		if !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{
			ResponseWriter: c.Writer,
			writer:         brotli.NewWriterLevel(c.Writer, brotli.DefaultCompression),
		}

		defer func() {
			if err := bw.flush(); err != nil {
				_ = c.Error(err)
			}
			if bw.compressed {
				bw.writer.Close()
			}
		}()

		c.Writer = bw
		c.Next()
	}
}

func acceptsBrotli(r *http.Request) bool {
	ae := r.Header.Get("Accept-Encoding")
	for _, enc := range strings.Split(ae, ",") {
		if strings.TrimSpace(strings.ToLower(enc)) == "br" {
			return true
		}
	}
	return false
}

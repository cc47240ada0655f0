package bootstrap

import (
	"net/http"
	"time"

	"github.com/agrinethra/plant-health-relay/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var corsMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// corsHeaders is the static list for preflights that name no headers.
var corsHeaders = []string{
	"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding",
	"Authorization", "X-Requested-With", "X-Request-Id",
}

// CORS allows credentialed requests with any header. With the wildcard
// origin list the request origin is echoed back, and preflights echo the
// requested headers, since browsers ignore "*" when credentials are allowed.
func CORS(c config.CORSConfig) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     corsMethods,
		AllowHeaders:     corsHeaders,
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if c.AllowsAllOrigins() {
		cc.AllowOriginFunc = func(string) bool { return true }
	} else {
		cc.AllowOrigins = c.AllowedOrigins
	}
	handler := cors.New(cc)

	return func(ctx *gin.Context) {
		requested := ctx.GetHeader("Access-Control-Request-Headers")
		if ctx.Request.Method == http.MethodOptions && requested != "" {
			orig := ctx.Writer
			ctx.Writer = &allowHeadersWriter{ResponseWriter: orig, allow: requested}
			defer func() { ctx.Writer = orig }()
		}
		handler(ctx)
	}
}

// allowHeadersWriter replaces Access-Control-Allow-Headers with the
// preflight's requested headers just before the status line is written.
// Rejected origins carry no Allow-Origin and are left untouched.
type allowHeadersWriter struct {
	gin.ResponseWriter
	allow string
}

func (w *allowHeadersWriter) reflect() {
	if w.Written() || w.Header().Get("Access-Control-Allow-Origin") == "" {
		return
	}
	w.Header().Set("Access-Control-Allow-Headers", w.allow)
}

func (w *allowHeadersWriter) WriteHeaderNow() {
	w.reflect()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *allowHeadersWriter) Write(data []byte) (int, error) {
	w.reflect()
	return w.ResponseWriter.Write(data)
}

func (w *allowHeadersWriter) WriteString(s string) (int, error) {
	w.reflect()
	return w.ResponseWriter.WriteString(s)
}

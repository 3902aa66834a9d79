package api

import (
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/freelancehub/agency-inbox/usecases"
)

// serverTimeoutMargin lets the request timeout middleware answer before the server cuts the
// connection.
const serverTimeoutMargin = 5 * time.Second

// NewServer mounts the inbox routes on router and serves them over HTTP/1.1 and cleartext HTTP/2.
func NewServer(router *gin.Engine, conf Configuration, uc usecases.Usecases) *http.Server {
	addRoutes(router, conf, uc)

	timeout := conf.DefaultTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	timeout += serverTimeoutMargin

	return &http.Server{
		Addr:         net.JoinHostPort("0.0.0.0", conf.Port),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  timeout,
		Handler:      h2c.NewHandler(router, &http2.Server{}),
	}
}

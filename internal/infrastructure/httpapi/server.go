package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

// Server lets other programs drive the widget over HTTP. Requests are turned
// into widget messages; the host publishes the resulting state back.
type Server struct {
	addr   string
	engine *gin.Engine
	msgs   chan domain.Message
	done   chan struct{}

	mu   sync.RWMutex
	snap *domain.Snapshot
}

var _ domain.MessageSource = (*Server)(nil)
var _ domain.SnapshotSink = (*Server)(nil)

func New(addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		addr: addr,
		msgs: make(chan domain.Message, 16),
		done: make(chan struct{}),
	}

	router := gin.New()
	router.Use(gin.Recovery(), accessLog())
	router.GET("/state", s.getState)
	router.PUT("/value", s.setValue)
	router.PUT("/range", s.setRange)
	router.PUT("/segments", s.setSegments)
	router.PUT("/orientation", s.setOrientation)
	router.PUT("/cells", s.setCells)
	router.POST("/redraw", s.redraw)
	s.engine = router

	return s
}

func (s *Server) handler() http.Handler { return s.engine }

func (s *Server) Publish(snap domain.Snapshot) {
	s.mu.Lock()
	s.snap = &snap
	s.mu.Unlock()
}

// Stream starts listening. The channel is closed after ctx is cancelled and
// the server has shut down.
func (s *Server) Stream(ctx context.Context) (<-chan domain.Message, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to listen on %s", s.addr)
	}
	srv := &http.Server{Handler: s.handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logrus.WithField("addr", ln.Addr().String()).Info("http control surface listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("http server stopped")
		}
	}()
	go func() {
		<-ctx.Done()
		close(s.done)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("http server shutdown")
		}
		close(s.msgs)
	}()
	return s.msgs, nil
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("http request")
	}
}

func (s *Server) send(c *gin.Context, m domain.Message) {
	select {
	case s.msgs <- m:
		c.Status(http.StatusAccepted)
	case <-c.Request.Context().Done():
		_ = c.AbortWithError(http.StatusServiceUnavailable, c.Request.Context().Err())
	case <-s.done:
		c.AbortWithStatus(http.StatusServiceUnavailable)
	}
}

func badRequest(c *gin.Context, err error) {
	c.IndentedJSON(http.StatusBadRequest, err.Error())
	_ = c.AbortWithError(http.StatusBadRequest, err)
}

func (s *Server) getState(c *gin.Context) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap == nil {
		c.IndentedJSON(http.StatusServiceUnavailable, "no state published yet")
		return
	}
	c.IndentedJSON(http.StatusOK, snap)
}

func (s *Server) setValue(c *gin.Context) {
	var v float64
	if err := c.BindJSON(&v); err != nil {
		return
	}
	s.send(c, domain.SetValue{Value: v})
}

type rangeBody struct {
	Min *float64 `json:"min" binding:"required"`
	Max *float64 `json:"max" binding:"required"`
}

func (s *Server) setRange(c *gin.Context) {
	var r rangeBody
	if err := c.BindJSON(&r); err != nil {
		return
	}
	if *r.Min >= *r.Max {
		badRequest(c, pkgerrors.Errorf("min must be below max, got [%g, %g]", *r.Min, *r.Max))
		return
	}
	s.send(c, domain.SetRange{Min: *r.Min, Max: *r.Max})
}

func (s *Server) setSegments(c *gin.Context) {
	var n int
	if err := c.BindJSON(&n); err != nil {
		return
	}
	s.send(c, domain.SetSegments{Count: n})
}

func (s *Server) setOrientation(c *gin.Context) {
	var horizontal bool
	if err := c.BindJSON(&horizontal); err != nil {
		return
	}
	s.send(c, domain.SetOrientation{Horizontal: horizontal})
}

func (s *Server) setCells(c *gin.Context) {
	var n int
	if err := c.BindJSON(&n); err != nil {
		return
	}
	s.send(c, domain.SetCells{Count: n})
}

func (s *Server) redraw(c *gin.Context) {
	s.send(c, domain.Redraw{})
}

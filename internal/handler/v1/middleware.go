package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/service"
	"github.com/aegiscare/hms/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const principalKey = "principal"

// principalFrom returns the authenticated principal set by Authenticate, or
// nil for anonymous requests.
func principalFrom(c *gin.Context) *domain.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*domain.Principal)
	return p
}

// Authenticate resolves the session credential into a Principal when one is
// present. It never rejects: route guards decide what anonymity means.
// The token is read from the Authorization header, falling back to the
// access_token cookie for browser clients.
func Authenticate(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		} else if cookie, err := c.Cookie("access_token"); err == nil {
			token = cookie
		}

		if token != "" {
			if p, err := authSvc.PrincipalFromToken(token); err == nil {
				c.Set(principalKey, p)
			}
		}

		c.Next()
	}
}

// RequireRoles guards a route group. Denials carry the redirect target:
// anonymous callers are pointed at login with the attempted path preserved,
// authenticated callers of the wrong role at their own dashboard.
func RequireRoles(collector *metrics.Collector, allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := principalFrom(c)
		decision := service.Authorize(p, c.Request.URL.Path, allowed...)
		if decision.Allowed {
			c.Next()
			return
		}

		if p == nil {
			collector.AuthorizationDenials.WithLabelValues("anonymous").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:      "authentication required",
				RedirectTo: decision.RedirectTo,
			})
			return
		}

		collector.AuthorizationDenials.WithLabelValues(string(p.Role)).Inc()
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Error:      "access denied",
			RedirectTo: decision.RedirectTo,
		})
	}
}

// Observe records request metrics and a server span per request.
func Observe(collector *metrics.Collector, serviceName string) gin.HandlerFunc {
	tracer := otel.Tracer(serviceName)

	return func(c *gin.Context) {
		start := time.Now()
		collector.InFlightGauge.Inc()
		defer collector.InFlightGauge.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", path),
			),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
		span.End()

		collector.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		collector.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}

// RequestLogger emits one structured line per completed request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if p := principalFrom(c); p != nil {
			fields = append(fields, zap.String("user_id", p.UserID.String()))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request", fields...)
		} else {
			log.Info("request", fields...)
		}
	}
}

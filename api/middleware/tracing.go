package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/coldreach/inboxstack/internal/tracing"
)

// TracingMiddleware creates a new span for each request and adds common tags
func TracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(
			c.Request.Context(),
			c.Request.Method+" "+c.FullPath(),
			c.Request.Header,
		)
		defer span.Finish()

		tracing.TagComponentRest(span)
		tracing.SetDefaultRestSpanTags(ctx, span)

		// Add entity ID if present in URL params
		if seq := c.Param("seq"); seq != "" {
			tracing.TagEntity(span, seq)
		}

		// Store span in context
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		// Add response status
		if c.Writer.Status() >= 400 {
			tracing.TraceErr(span, errors.Errorf("request failed with status %d", c.Writer.Status()))
		}
	}
}

package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
)

// ErrorHandler is a Gin middleware that catches errors pushed with c.Error.
// Sentinel errors from the services map to their status codes; anything else
// becomes a 500 without exposing internals to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		switch {
		case errors.Is(err, apierror.ErrMesaOcupada):
			c.AbortWithStatusJSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, apierror.ErrNoEncontrado):
			c.AbortWithStatusJSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, apierror.ErrValidacion):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		default:
			// Log the internal error with full context (for debugging)
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Err(err).
				Msg("unhandled error")

			// Return a safe error message — no stack trace
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		}
	}
}

// Recovery handles panics and converts them into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency, and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on database and cache connectivity).
type HealthHandler struct {
	dbPing    func() error // Checks database connectivity
	cachePing func() error // Checks Redis connectivity
}

// NewHealthHandler constructs a HealthHandler with the provided ping functions.
// Typically dbPing is db.Ping from *sql.DB and cachePing wraps the Redis
// client's Ping.
func NewHealthHandler(dbPing, cachePing func() error) *HealthHandler {
	return &HealthHandler{dbPing: dbPing, cachePing: cachePing}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK if both pings succeed, 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe (just checks if the service is up)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness probe (checks DB and cache connections)
	r.GET("/readyz", func(c *gin.Context) {
		if h.dbPing != nil && h.dbPing() != nil {
			c.JSON(503, gin.H{"status": "degraded", "dependency": "postgres"})
			return
		}
		if h.cachePing != nil && h.cachePing() != nil {
			c.JSON(503, gin.H{"status": "degraded", "dependency": "redis"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}

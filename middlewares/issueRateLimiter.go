package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"civicsync/logger"
)

// IssueWindow is the period over which IssueRateLimiter counts submissions.
const IssueWindow = 24 * time.Hour

// IssueRateLimiter allows each user at most limit requests per IssueWindow, counted in
// Redis under queuePrefix:<user id>. It must run after AuthMiddleware.
func IssueRateLimiter(rdb *redis.Client, queuePrefix string, limit int, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		userKey := queuePrefix + ":" + user.ID

		count, err := rdb.Incr(ctx, userKey).Result()
		if err != nil {
			log.Error("Rate limiter: redis error incrementing count", "user_id", user.ID, "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			c.Abort()
			return
		}

		// Start the window on the first submission
		if count == 1 {
			if err := rdb.Expire(ctx, userKey, IssueWindow).Err(); err != nil {
				log.Error("Rate limiter: redis error setting TTL", "user_id", user.ID, "error", err.Error())
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := rdb.TTL(ctx, userKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"payetonkawa/internal/models"
	"payetonkawa/internal/session"
)

// RequireSession redirects unauthenticated navigation to the entry route.
// A pure presence check: no logging, no error state.
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store.User() == nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUser re-reads the session inside a guarded handler. The store is
// process-wide, so a concurrent logout or 401 teardown can empty it between
// the guard and the handler; callers bail out the same way the guard does.
func (g *Gateway) currentUser(c *gin.Context) (*models.User, bool) {
	user := g.Session.User()
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return nil, false
	}
	return user, true
}

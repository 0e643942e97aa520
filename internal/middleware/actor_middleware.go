package middleware

import (
	"net/http"

	"go-elra/internal/directory"
	"go-elra/internal/shared/apperror"
	"go-elra/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoadActor resolves the authenticated user, with role and department, from the directory.
// It must run after AuthMiddleware.
func LoadActor(dir directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		id, err := uuid.Parse(userID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_USER_ID", "Invalid user id in token", nil)
			c.Abort()
			return
		}

		actor, err := dir.GetUser(c.Request.Context(), id)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			if httpErr.Status == http.StatusNotFound {
				httpErr.Status = http.StatusUnauthorized
				httpErr.Code = apperror.CodeUnauthorized
			}
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}
		if !actor.IsActive {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "user account is inactive", nil)
			c.Abort()
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

func ActorFromContext(c *gin.Context) (*directory.User, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return nil, false
	}
	actor, ok := v.(*directory.User)
	return actor, ok && actor != nil
}

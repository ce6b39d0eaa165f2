package middleware

import "github.com/gin-gonic/gin"

const UserIDKey = "user_id"

// DemoUser pins every request to one configured account. The app has no
// login; this is where a real authenticator would set the user id.
func DemoUser(userID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func UserID(c *gin.Context) int {
	return c.GetInt(UserIDKey)
}

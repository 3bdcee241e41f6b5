package middleware

import (
	"github.com/chandrabs25/travelbook/internal/gateway"
	"github.com/gin-gonic/gin"
)

func RazorpayMiddleware(client *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("rzp_client", client)
		c.Next()
	}
}

func GetRazorpayClient(c *gin.Context) *gateway.Client {
	client, exists := c.Get("rzp_client")
	if !exists {
		return nil
	}
	return client.(*gateway.Client)
}

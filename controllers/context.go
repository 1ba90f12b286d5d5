package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// callerID extracts the authenticated caller set by the auth
// middleware.
func callerID(c *gin.Context) (primitive.ObjectID, error) {
	userID, exists := c.Get("userIdStr")
	if !exists {
		return primitive.NilObjectID, fmt.Errorf("user not authenticated")
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("invalid user ID format")
	}

	objID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid user ID format")
	}
	return objID, nil
}

// parseObjectIDParam reads and validates a path parameter.
func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	raw := c.Param(name)
	objID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

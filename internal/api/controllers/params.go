package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"itinera/pkg/utils"
)

// uuidParam reads a path parameter as a UUID and answers 400 when it is not one.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "must be a UUID",
			Field:   name,
			TraceID: c.GetString("trace_id"),
		})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

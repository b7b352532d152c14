package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insurance-chatbot-backend/models"
	"insurance-chatbot-backend/services"
)

type UserController struct {
	registrationService *services.RegistrationService
}

func NewUserController(registrationService *services.RegistrationService) *UserController {
	return &UserController{registrationService: registrationService}
}

// RegisterUser creates a policy holder record
func (uc *UserController) RegisterUser(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	user, err := uc.registrationService.RegisterUser(c.Request.Context(), req.Name, req.Vehicle, req.InsuranceType)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

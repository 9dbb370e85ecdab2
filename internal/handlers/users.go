package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/models"
)

func ListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Preload("Role").Order("username").Find(&users).Error; err != nil {
		log.Printf("Failed to list users: %v", err)
		renderServerError(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "users_list.html", page(ctx, "Users", gin.H{
		"Users": users,
	}))
}

package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/models"
)

func ListOrganizations(ctx *gin.Context) {
	var organizations []models.Organization

	if err := db.DB.Order("name").Find(&organizations).Error; err != nil {
		log.Printf("Failed to list organizations: %v", err)
		renderServerError(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "organizations_list.html", page(ctx, "Organizations", gin.H{
		"Organizations": organizations,
	}))
}

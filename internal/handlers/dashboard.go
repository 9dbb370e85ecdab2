package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/models"
)

const recentInteractionsLimit = 10

func Dashboard(ctx *gin.Context) {
	var totalClients, activeClients, totalOrganizations int64

	if err := db.DB.Model(&models.VIPClient{}).Count(&totalClients).Error; err != nil {
		log.Printf("Failed to count clients: %v", err)
		renderServerError(ctx)
		return
	}

	if err := db.DB.Model(&models.VIPClient{}).Where("status = ?", models.StatusActive).Count(&activeClients).Error; err != nil {
		log.Printf("Failed to count active clients: %v", err)
		renderServerError(ctx)
		return
	}

	if err := db.DB.Model(&models.Organization{}).Count(&totalOrganizations).Error; err != nil {
		log.Printf("Failed to count organizations: %v", err)
		renderServerError(ctx)
		return
	}

	var recent []models.Interaction

	err := db.DB.Preload("VIPClient").
		Preload("User").
		Order("date DESC").
		Order("id DESC").
		Limit(recentInteractionsLimit).
		Find(&recent).Error

	if err != nil {
		log.Printf("Failed to load recent interactions: %v", err)
		renderServerError(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "dashboard.html", page(ctx, "Dashboard", gin.H{
		"TotalClients":       totalClients,
		"ActiveClients":      activeClients,
		"TotalOrganizations": totalOrganizations,
		"RecentInteractions": recent,
	}))
}

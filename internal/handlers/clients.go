package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/models"
	"github.com/vipcrm/vipcrm/internal/types"
	"github.com/vipcrm/vipcrm/internal/utils"
	"gorm.io/gorm"
)

type ClientForm struct {
	FullName     string `form:"full_name" binding:"required,max=200"`
	Position     string `form:"position" binding:"max=200"`
	Phone        string `form:"phone" binding:"max=20"`
	Email        string `form:"email" binding:"omitempty,email,max=100"`
	Organization string `form:"organization"`
	Status       string `form:"status"`
	Notes        string `form:"notes"`
}

func clientFormFrom(client models.VIPClient) ClientForm {
	form := ClientForm{
		FullName: client.FullName,
		Position: client.Position,
		Phone:    client.Phone,
		Email:    client.Email,
		Status:   string(client.Status),
		Notes:    client.Notes,
	}

	if client.OrganizationID != nil {
		form.Organization = strconv.FormatUint(uint64(*client.OrganizationID), 10)
	}

	return form
}

// apply validates the choice fields and copies the form onto client.
func (f *ClientForm) apply(client *models.VIPClient) error {
	trimAll(&f.FullName, &f.Position, &f.Phone, &f.Email, &f.Organization, &f.Status)

	if f.FullName == "" {
		return &FormError{Message: "Full name is required."}
	}

	status, err := models.ParseClientStatus(f.Status)
	if err != nil {
		return &FormError{Message: "Select a valid status."}
	}

	organizationID, err := utils.ParseOptionalID(f.Organization)
	if err != nil {
		return &FormError{Message: "Select a valid organization."}
	}

	if organizationID != nil {
		var count int64
		if err := db.DB.Model(&models.Organization{}).Where("id = ?", *organizationID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up organization %d: %w", *organizationID, err)
		}
		if count == 0 {
			return &FormError{Message: "Select a valid organization."}
		}
	}

	client.FullName = f.FullName
	client.Position = f.Position
	client.Phone = f.Phone
	client.Email = f.Email
	client.OrganizationID = organizationID
	client.Organization = nil
	client.Status = status
	client.Notes = f.Notes

	f.Status = string(status)

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterClients narrows a client query by status and by a case-insensitive
// substring match on name, email, phone or position. Empty values are ignored.
func filterClients(query *gorm.DB, search, status string) *gorm.DB {
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(
			`(LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(phone) LIKE ? ESCAPE '\' OR LOWER(position) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern,
		)
	}

	return query
}

func ListClients(ctx *gin.Context) {
	search := strings.TrimSpace(ctx.Query("search"))
	status := strings.TrimSpace(ctx.Query("status"))

	var clients []models.VIPClient

	query := filterClients(db.DB.Model(&models.VIPClient{}), search, status)

	if err := query.Preload("Organization").Order("full_name").Order("id").Find(&clients).Error; err != nil {
		log.Printf("Failed to list clients: %v", err)
		renderServerError(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "clients_list.html", page(ctx, "VIP clients", gin.H{
		"Search":        search,
		"Status":        status,
		"StatusChoices": models.StatusChoices,
		"Clients":       clients,
	}))
}

// loadClient fetches the client named by the :id path parameter. It renders
// the 404 or error page itself and reports false when the handler should stop.
func loadClient(ctx *gin.Context, preload bool) (models.VIPClient, bool) {
	var client models.VIPClient

	clientID, err := utils.GetClientID(ctx)
	if err != nil {
		renderNotFound(ctx, "Client not found.")
		return client, false
	}

	query := db.DB
	if preload {
		query = query.Preload("Organization")
	}

	if err := query.First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(ctx, "Client not found.")
			return client, false
		}

		log.Printf("Failed to load client %d: %v", clientID, err)
		renderServerError(ctx)
		return client, false
	}

	return client, true
}

func ClientDetail(ctx *gin.Context) {
	client, ok := loadClient(ctx, true)
	if !ok {
		return
	}

	var interactions []models.Interaction

	err := db.DB.Where("vip_client_id = ?", client.ID).
		Preload("User").
		Order("date DESC").
		Order("id DESC").
		Find(&interactions).Error

	if err != nil {
		log.Printf("Failed to load interactions for client %d: %v", client.ID, err)
		renderServerError(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "client_detail.html", page(ctx, client.FullName, gin.H{
		"Client":       client,
		"Interactions": interactions,
	}))
}

func renderClientForm(ctx *gin.Context, status int, title, action string, form ClientForm, message string) {
	var organizations []models.Organization

	if err := db.DB.Order("name").Find(&organizations).Error; err != nil {
		log.Printf("Failed to load organizations: %v", err)
		renderServerError(ctx)
		return
	}

	ctx.HTML(status, "client_form.html", page(ctx, title, gin.H{
		"Action":        action,
		"Form":          form,
		"Organizations": organizations,
		"StatusChoices": models.StatusChoices,
		"Error":         message,
	}))
}

// saveClientForm binds and validates the submitted form into client, then
// persists it with save. It renders the form again on any failure.
func saveClientForm(ctx *gin.Context, client *models.VIPClient, title, action string, save func(*models.VIPClient) error) bool {
	var form ClientForm

	if err := ctx.ShouldBind(&form); err != nil {
		renderClientForm(ctx, http.StatusBadRequest, title, action, form, bindError(err).Message)
		return false
	}

	if err := form.apply(client); err != nil {
		var formErr *FormError
		if errors.As(err, &formErr) {
			renderClientForm(ctx, http.StatusBadRequest, title, action, form, formErr.Message)
			return false
		}

		log.Printf("Failed to validate client form: %v", err)
		renderClientForm(ctx, http.StatusInternalServerError, title, action, form, "The client could not be saved. Please try again.")
		return false
	}

	if err := save(client); err != nil {
		log.Printf("Failed to save client: %v", err)
		renderClientForm(ctx, http.StatusInternalServerError, title, action, form, "The client could not be saved. Please try again.")
		return false
	}

	return true
}

func ShowAddClient(ctx *gin.Context) {
	renderClientForm(ctx, http.StatusOK, "Add client", "/clients/add/", ClientForm{Status: string(models.StatusActive)}, "")
}

func AddClient(ctx *gin.Context) {
	var client models.VIPClient

	saved := saveClientForm(ctx, &client, "Add client", "/clients/add/", func(c *models.VIPClient) error {
		return db.DB.Create(c).Error
	})
	if !saved {
		return
	}

	utils.SetFlash(ctx, types.FlashSuccess, fmt.Sprintf("Client %s was added.", client.FullName))
	go BroadcastRefresh()
	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/clients/%d/", client.ID))
}

func ShowEditClient(ctx *gin.Context) {
	client, ok := loadClient(ctx, false)
	if !ok {
		return
	}

	renderClientForm(ctx, http.StatusOK, "Edit client", fmt.Sprintf("/clients/%d/edit/", client.ID), clientFormFrom(client), "")
}

func EditClient(ctx *gin.Context) {
	client, ok := loadClient(ctx, false)
	if !ok {
		return
	}

	saved := saveClientForm(ctx, &client, "Edit client", fmt.Sprintf("/clients/%d/edit/", client.ID), func(c *models.VIPClient) error {
		return db.DB.Save(c).Error
	})
	if !saved {
		return
	}

	utils.SetFlash(ctx, types.FlashSuccess, fmt.Sprintf("Client %s was updated.", client.FullName))
	go BroadcastRefresh()
	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/clients/%d/", client.ID))
}

func ShowDeleteClient(ctx *gin.Context) {
	client, ok := loadClient(ctx, false)
	if !ok {
		return
	}

	ctx.HTML(http.StatusOK, "client_delete.html", page(ctx, "Delete client", gin.H{
		"Client": client,
	}))
}

// DeleteClient removes the client. Its interactions go with it through the
// ON DELETE CASCADE foreign key.
func DeleteClient(ctx *gin.Context) {
	client, ok := loadClient(ctx, false)
	if !ok {
		return
	}

	if err := db.DB.Delete(&client).Error; err != nil {
		log.Printf("Failed to delete client %d: %v", client.ID, err)
		utils.SetFlash(ctx, types.FlashError, fmt.Sprintf("Client %s could not be deleted.", client.FullName))
		ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/clients/%d/", client.ID))
		return
	}

	utils.SetFlash(ctx, types.FlashSuccess, fmt.Sprintf("Client %s was deleted.", client.FullName))
	go BroadcastRefresh()
	ctx.Redirect(http.StatusSeeOther, "/clients/")
}

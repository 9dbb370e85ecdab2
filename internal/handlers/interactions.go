package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/models"
	"github.com/vipcrm/vipcrm/internal/services"
	"github.com/vipcrm/vipcrm/internal/types"
	"github.com/vipcrm/vipcrm/internal/utils"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

type InteractionForm struct {
	Date        string `form:"date" binding:"required"`
	Type        string `form:"type" binding:"required"`
	Channel     string `form:"channel"`
	Description string `form:"description" binding:"required"`
	Result      string `form:"result"`
}

// build validates the form and returns an interaction for clientID authored
// by userID.
func (f *InteractionForm) build(clientID uint, userID *uint) (models.Interaction, error) {
	trimAll(&f.Date, &f.Type, &f.Channel)

	date, err := time.Parse(dateLayout, f.Date)
	if err != nil {
		return models.Interaction{}, &FormError{Message: "Enter the date as YYYY-MM-DD."}
	}

	interactionType, err := models.ParseInteractionType(f.Type)
	if err != nil {
		return models.Interaction{}, &FormError{Message: "Select a valid interaction type."}
	}

	if strings.TrimSpace(f.Description) == "" {
		return models.Interaction{}, &FormError{Message: "Description is required."}
	}

	channel, err := models.ParseInteractionChannel(f.Channel)
	if err != nil {
		return models.Interaction{}, &FormError{Message: "Select a valid channel."}
	}

	return models.Interaction{
		VIPClientID: clientID,
		UserID:      userID,
		Date:        datatypes.Date(date),
		Type:        interactionType,
		Channel:     channel,
		Description: f.Description,
		Result:      f.Result,
	}, nil
}

func renderInteractionForm(ctx *gin.Context, status int, client models.VIPClient, form InteractionForm, message string) {
	ctx.HTML(status, "interaction_add.html", page(ctx, "Log interaction", gin.H{
		"Client":         client,
		"Form":           form,
		"TypeChoices":    models.TypeChoices,
		"ChannelChoices": models.ChannelChoices,
		"Error":          message,
	}))
}

func ShowAddInteraction(ctx *gin.Context) {
	client, ok := loadClient(ctx, false)
	if !ok {
		return
	}

	renderInteractionForm(ctx, http.StatusOK, client, InteractionForm{
		Date: time.Now().Format(dateLayout),
		Type: string(models.TypeMeeting),
	}, "")
}

// AddInteraction records an interaction with the client, attributed to the
// signed-in user.
func AddInteraction(ctx *gin.Context) {
	client, ok := loadClient(ctx, false)
	if !ok {
		return
	}

	var form InteractionForm

	if err := ctx.ShouldBind(&form); err != nil {
		renderInteractionForm(ctx, http.StatusBadRequest, client, form, bindError(err).Message)
		return
	}

	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		log.Printf("Interaction submitted without a session user: %v", err)
		renderServerError(ctx)
		return
	}

	interaction, err := form.build(client.ID, &user.ID)
	if err != nil {
		var formErr *FormError
		if errors.As(err, &formErr) {
			renderInteractionForm(ctx, http.StatusBadRequest, client, form, formErr.Message)
			return
		}

		log.Printf("Failed to build interaction for client %d: %v", client.ID, err)
		renderServerError(ctx)
		return
	}

	if err := db.DB.Create(&interaction).Error; err != nil {
		log.Printf("Failed to create interaction for client %d: %v", client.ID, err)
		renderInteractionForm(ctx, http.StatusInternalServerError, client, form, "The interaction could not be saved. Please try again.")
		return
	}

	if notifier.Enabled() {
		event := services.InteractionLogged{Client: client, Interaction: interaction, Author: user.DisplayName()}
		go func() {
			if err := notifier.SendInteractionLogged(event); err != nil {
				log.Printf("Failed to send interaction webhook for client %d: %v", event.Client.ID, err)
			}
		}()
	}

	utils.SetFlash(ctx, types.FlashSuccess, fmt.Sprintf("Interaction with %s was logged.", client.FullName))
	go BroadcastRefresh()
	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/clients/%d/", client.ID))
}

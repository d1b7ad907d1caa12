package controller

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type MeetingController struct {
	DB        *gorm.DB
	Provider  MeetingProvider
	Mail      Mailer
	Directory ProfileDirectory
	Logger    *log.Logger
}

func NewMeetingController(db *gorm.DB, provider MeetingProvider, mail Mailer, directory ProfileDirectory, logger *log.Logger) *MeetingController {
	return &MeetingController{
		DB:        db,
		Provider:  provider,
		Mail:      mail,
		Directory: directory,
		Logger:    logger,
	}
}

var meetingFilters = []utils.QueryFilter{
	{Param: "meetingName", Column: "meeting_name", Kind: utils.FilterLike},
	{Param: "hostId", Column: "host_id", Kind: utils.FilterEquals},
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
	{Param: "leadId", Column: "lead_id", Kind: utils.FilterInt},
	{Param: "batchId", Column: "batch_id", Kind: utils.FilterInt},
	{Param: "trainerId", Column: "trainer_id", Kind: utils.FilterInt},
	{Param: "campaignId", Column: "campaign_id", Kind: utils.FilterInt},
	{Param: "learnerId", Column: "learner_id", Kind: utils.FilterInt},
	{Param: "mainTaskId", Column: "main_task_id", Kind: utils.FilterInt},
}

// GetMeetings lists meetings by the registered filters, or one when id is set.
func (mc *MeetingController) GetMeetings(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var meeting models.Meeting
		if err := mc.DB.First(&meeting, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch meeting", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Meeting fetched successfully", meeting)
	}

	query := utils.ApplyFilters(c, mc.DB.Model(&models.Meeting{}), meetingFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var meetings []models.Meeting
	if err := query.Order("created_at DESC").Find(&meetings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch meetings", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Meetings fetched successfully", meetings)
}

// CreateMeeting schedules a provider meeting, mails the invite to every
// participant, then persists the meeting and its "Meeting" feed activity in
// one transaction. A provider or mail failure fails the whole request.
func (mc *MeetingController) CreateMeeting(c *fiber.Ctx) error {
	var input struct {
		MeetingName  string   `json:"meetingName" validate:"required"`
		Location     string   `json:"location"`
		StartTime    string   `json:"startTime" validate:"required"`
		EndTime      string   `json:"endTime" validate:"required"`
		Participants []string `json:"participants"`
		UserID       string   `json:"userId" validate:"required"`

		LeadID     *uint `json:"leadId"`
		BatchID    *uint `json:"batchId"`
		TrainerID  *uint `json:"trainerId"`
		CampaignID *uint `json:"campaignId"`
		LearnerID  *uint `json:"learnerId"`
		MainTaskID *uint `json:"mainTaskId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	start, err := requireDate(input.StartTime, "startTime")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	end, err := requireDate(input.EndTime, "endTime")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if !end.After(start) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "endTime must be after startTime", nil)
	}

	duration := int(end.Sub(start).Minutes())
	zoomMeeting, err := mc.Provider.CreateMeeting(c.Context(), input.MeetingName, start, duration)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create provider meeting", err)
	}

	recipients := input.Participants
	if profile, err := mc.Directory.GetUser(c.Context(), input.UserID); err != nil {
		mc.Logger.Printf("host lookup failed for %s: %v", input.UserID, err)
	} else if profile.Email != "" {
		recipients = append(recipients, profile.Email)
	}

	if len(recipients) > 0 {
		body := fmt.Sprintf(
			"<p>You are invited to <b>%s</b>.</p><p>Starts: %s</p><p>Join: <a href=%q>%s</a></p>",
			input.MeetingName, start.Format("Mon, 02 Jan 2006 15:04 MST"), zoomMeeting.JoinURL, zoomMeeting.JoinURL)
		if err := mc.Mail.Send(recipients, nil, "Meeting invite: "+input.MeetingName, body); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send meeting invites", err)
		}
	}

	refs := models.ContextRefs{
		LeadID:     input.LeadID,
		BatchID:    input.BatchID,
		TrainerID:  input.TrainerID,
		CampaignID: input.CampaignID,
		LearnerID:  input.LearnerID,
		MainTaskID: input.MainTaskID,
	}
	meeting := models.Meeting{
		MeetingName:   input.MeetingName,
		Location:      input.Location,
		ZoomMeetingID: strconv.FormatInt(zoomMeeting.ID, 10),
		StartTime:     start,
		EndTime:       end,
		HostID:        zoomMeeting.HostID,
		Participants:  datatypes.NewJSONSlice(input.Participants),
		UserID:        input.UserID,
		ContextRefs:   refs,
	}

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meeting).Error; err != nil {
			return err
		}
		activity := models.NewActivity("Meeting", meeting.UserID, refs,
			models.ActivityPayload{Kind: models.PayloadMeeting, RefID: meeting.ID})
		return tx.Create(&activity).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save meeting", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Meeting created successfully", meeting)
}

// DeleteMeetings removes one meeting by id or several by ids.
func (mc *MeetingController) DeleteMeetings(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := mc.DB.Delete(&models.Meeting{}, ids)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete meetings", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No meetings found for the given ids", nil)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Meetings deleted successfully")
}

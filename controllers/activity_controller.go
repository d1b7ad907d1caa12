package controller

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

// ActivityController serves the polymorphic timeline feed: activities matched
// by exactly one context key, each resolved to the entity its payload
// reference points at.
type ActivityController struct {
	DB        *gorm.DB
	Directory ProfileDirectory
	Logger    *log.Logger
}

func NewActivityController(db *gorm.DB, directory ProfileDirectory, logger *log.Logger) *ActivityController {
	return &ActivityController{
		DB:        db,
		Directory: directory,
		Logger:    logger,
	}
}

// activityContextKeys maps the recognized body keys to activity columns.
var activityContextKeys = []struct {
	Key    string
	Column string
}{
	{"leadId", "lead_id"},
	{"batchId", "batch_id"},
	{"trainerId", "trainer_id"},
	{"campaignId", "campaign_id"},
	{"learnerId", "learner_id"},
	{"mainTaskId", "main_task_id"},
}

// activityWithData is the feed row: the activity plus its resolved payload
// entity, or null when the row carries no payload reference.
type activityWithData struct {
	models.Activity
	Data interface{} `json:"data"`
}

// GetActivities answers the feed query. The body must contain exactly one
// recognized context key with a non-zero value. Rows come back newest first
// with their payloads resolved concurrently; per-row enrichment failures
// degrade to a null profile and never abort the batch.
func (ac *ActivityController) GetActivities(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	var column string
	var value float64
	matched := 0
	for _, ck := range activityContextKeys {
		raw, present := body[ck.Key]
		if !present {
			continue
		}
		n, ok := raw.(float64)
		if !ok || n == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, ck.Key+" must be a non-zero id", nil)
		}
		matched++
		column = ck.Column
		value = n
	}
	if matched != 1 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			"exactly one of leadId, batchId, trainerId, campaignId, learnerId, mainTaskId is required", nil)
	}

	var activities []models.Activity
	if err := ac.DB.Where(column+" = ?", uint(value)).Order("created_at DESC").Find(&activities).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch activities", err)
	}
	if len(activities) == 0 {
		return utils.DataResponse(c, fiber.StatusOK, "No activities found", []activityWithData{})
	}

	rows := make([]activityWithData, len(activities))
	g, ctx := errgroup.WithContext(c.Context())
	for i, activity := range activities {
		i, activity := i, activity
		g.Go(func() error {
			rows[i] = activityWithData{
				Activity: activity,
				Data:     ac.resolvePayload(ctx, activity),
			}
			return nil
		})
	}
	// Workers never return errors; failures degrade per row.
	_ = g.Wait()

	return utils.DataResponse(c, fiber.StatusOK, "Activities fetched successfully", rows)
}

// resolvePayload loads the entity the activity's payload reference points at
// and attaches related detail. Lookup failures are logged and yield nil.
func (ac *ActivityController) resolvePayload(ctx context.Context, activity models.Activity) interface{} {
	payload, ok := activity.Payload()
	if !ok {
		return nil
	}

	switch payload.Kind {
	case models.PayloadTask:
		var task models.Task
		if err := ac.DB.First(&task, payload.RefID).Error; err != nil {
			ac.Logger.Printf("activity %d: task %d lookup failed: %v", activity.ID, payload.RefID, err)
			return nil
		}
		return fiber.Map{"task": task, "user": ac.lookupProfile(ctx, activity.ID, task.UserID)}

	case models.PayloadMeeting:
		var meeting models.Meeting
		if err := ac.DB.First(&meeting, payload.RefID).Error; err != nil {
			ac.Logger.Printf("activity %d: meeting %d lookup failed: %v", activity.ID, payload.RefID, err)
			return nil
		}
		return fiber.Map{"meeting": meeting, "user": ac.lookupProfile(ctx, activity.ID, meeting.UserID)}

	case models.PayloadEmail:
		var email models.Email
		if err := ac.DB.First(&email, payload.RefID).Error; err != nil {
			ac.Logger.Printf("activity %d: email %d lookup failed: %v", activity.ID, payload.RefID, err)
			return nil
		}
		row := fiber.Map{"email": email}
		if email.EmailTemplateID != nil {
			var template models.EmailTemplate
			if err := ac.DB.First(&template, *email.EmailTemplateID).Error; err != nil {
				ac.Logger.Printf("activity %d: template %d lookup failed: %v", activity.ID, *email.EmailTemplateID, err)
			} else {
				row["template"] = template
			}
		}
		return row

	case models.PayloadMessage, models.PayloadWhatsapp:
		var message models.Message
		if err := ac.DB.First(&message, payload.RefID).Error; err != nil {
			ac.Logger.Printf("activity %d: message %d lookup failed: %v", activity.ID, payload.RefID, err)
			return nil
		}
		return fiber.Map{"message": message}
	}
	return nil
}

// lookupProfile fetches the public profile for a user id, degrading to nil on
// any directory failure.
func (ac *ActivityController) lookupProfile(ctx context.Context, activityID uint, userID string) *utils.UserProfile {
	if userID == "" {
		return nil
	}
	profile, err := ac.Directory.GetUser(ctx, userID)
	if err != nil {
		ac.Logger.Printf("activity %d: profile lookup failed for %s: %v", activityID, userID, err)
		return nil
	}
	return profile
}

package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "skillcapital/controllers"
	"skillcapital/middleware"
)

// Dependencies carries the external collaborators the controllers need. main
// builds the real clients; tests pass fakes.
type Dependencies struct {
	Directory controller.ProfileDirectory
	Store     controller.FileStore
	Mail      controller.Mailer
	Sender    controller.MessageSender
	Meetings  controller.MeetingProvider
	Telephony controller.Telephony
	Generator controller.TextGenerator
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Dependencies) {
	// Initialize controllers with their respective loggers
	leadController := controller.NewLeadController(db, log.New(os.Stdout, "LEAD: ", log.LstdFlags))
	campaignController := controller.NewCampaignController(db, log.New(os.Stdout, "CAMPAIGN: ", log.LstdFlags))
	batchController := controller.NewBatchController(db, log.New(os.Stdout, "BATCH: ", log.LstdFlags))
	trainerController := controller.NewTrainerController(db, deps.Store, log.New(os.Stdout, "TRAINER: ", log.LstdFlags))
	learnerController := controller.NewLearnerController(db, deps.Store, log.New(os.Stdout, "LEARNER: ", log.LstdFlags))
	taskController := controller.NewTaskController(db, deps.Directory, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	mainTaskController := controller.NewMainTaskController(db, log.New(os.Stdout, "MAINTASK: ", log.LstdFlags))
	meetingController := controller.NewMeetingController(db, deps.Meetings, deps.Mail, deps.Directory, log.New(os.Stdout, "MEETING: ", log.LstdFlags))
	emailController := controller.NewEmailController(db, deps.Mail, log.New(os.Stdout, "EMAIL: ", log.LstdFlags))
	messageController := controller.NewMessageController(db, deps.Sender, log.New(os.Stdout, "MESSAGE: ", log.LstdFlags))
	templateController := controller.NewTemplateController(db, log.New(os.Stdout, "TEMPLATE: ", log.LstdFlags))
	noteController := controller.NewNoteController(db, log.New(os.Stdout, "NOTE: ", log.LstdFlags))
	activityController := controller.NewActivityController(db, deps.Directory, log.New(os.Stdout, "ACTIVITY: ", log.LstdFlags))
	callController := controller.NewCallController(db, deps.Telephony, log.New(os.Stdout, "CALL: ", log.LstdFlags))
	userController := controller.NewUserController(deps.Directory, log.New(os.Stdout, "USER: ", log.LstdFlags))
	aiController := controller.NewAIController(deps.Generator, log.New(os.Stdout, "AI: ", log.LstdFlags))

	api := app.Group("/api", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	leads := api.Group("/leads")
	leads.Get("/", leadController.GetLeads)
	leads.Get("/statistics", leadController.GetLeadStatistics)
	leads.Post("/", leadController.CreateLead)
	leads.Put("/", leadController.UpdateLead)
	leads.Delete("/", leadController.DeleteLeads)

	campaigns := api.Group("/campaigns")
	campaigns.Get("/", campaignController.GetCampaigns)
	campaigns.Post("/", campaignController.CreateCampaign)
	campaigns.Put("/", campaignController.ReplaceCampaign)
	campaigns.Patch("/", campaignController.PatchCampaign)
	campaigns.Delete("/", campaignController.DeleteCampaigns)

	batches := api.Group("/batches")
	batches.Get("/", batchController.GetBatches)
	batches.Get("/lead", batchController.GetBatchesWithLeads)
	batches.Get("/learners", batchController.GetBatchLearners)
	batches.Post("/", batchController.CreateBatch)
	batches.Put("/", batchController.UpdateBatch)
	batches.Delete("/", batchController.DeleteBatches)

	trainers := api.Group("/trainers")
	trainers.Get("/", trainerController.GetTrainers)
	trainers.Get("/batches", trainerController.GetTrainerBatches)
	trainers.Get("/statistics", trainerController.GetTrainerStatistics)
	trainers.Post("/", trainerController.CreateTrainer)
	trainers.Put("/", trainerController.UpdateTrainer)
	trainers.Delete("/", trainerController.DeleteTrainers)

	learners := api.Group("/learners")
	learners.Get("/", learnerController.GetLearners)
	learners.Get("/batches", learnerController.GetLearnerBatches)
	learners.Get("/trainers", learnerController.GetLearnerTrainers)
	learners.Post("/", learnerController.CreateLearner)
	learners.Put("/", learnerController.UpdateLearner)
	learners.Delete("/", learnerController.DeleteLearners)

	tasks := api.Group("/tasks")
	tasks.Get("/", taskController.GetTasks)
	tasks.Post("/", taskController.CreateTask)
	tasks.Put("/", taskController.UpdateTask)
	tasks.Delete("/", taskController.DeleteTasks)

	mainTasks := api.Group("/mainTask")
	mainTasks.Get("/", mainTaskController.GetMainTasks)
	mainTasks.Post("/", mainTaskController.CreateMainTask)
	mainTasks.Put("/", mainTaskController.UpdateMainTask)
	mainTasks.Delete("/", mainTaskController.DeleteMainTasks)

	meetings := api.Group("/meeting")
	meetings.Get("/", meetingController.GetMeetings)
	meetings.Post("/", meetingController.CreateMeeting)
	meetings.Delete("/", meetingController.DeleteMeetings)

	emails := api.Group("/email")
	emails.Get("/", emailController.GetEmails)
	emails.Post("/", middleware.SendRateLimiter(), emailController.SendEmail)
	emails.Delete("/", emailController.DeleteEmails)

	messages := api.Group("/message")
	messages.Get("/", messageController.GetMessages)
	messages.Post("/", middleware.SendRateLimiter(), messageController.SendMessage)
	messages.Delete("/", messageController.DeleteMessages)

	emailTemplates := api.Group("/emailTemplates")
	emailTemplates.Get("/", templateController.GetEmailTemplates)
	emailTemplates.Post("/", templateController.CreateEmailTemplate)
	emailTemplates.Put("/", templateController.UpdateEmailTemplate)
	emailTemplates.Delete("/", templateController.DeleteEmailTemplates)

	messageTemplates := api.Group("/messageTemplate")
	messageTemplates.Get("/", templateController.GetMessageTemplates)
	messageTemplates.Post("/", templateController.CreateMessageTemplate)
	messageTemplates.Put("/", templateController.UpdateMessageTemplate)
	messageTemplates.Delete("/", templateController.DeleteMessageTemplates)

	notes := api.Group("/notes")
	notes.Get("/", noteController.GetNotes)
	notes.Post("/", noteController.CreateNote)
	notes.Put("/", noteController.UpdateNote)
	notes.Delete("/", noteController.DeleteNotes)

	api.Post("/activity", activityController.GetActivities)

	calls := api.Group("/calls")
	calls.Get("/", callController.GetCalls)
	calls.Get("/download", callController.DownloadRecording)
	calls.Post("/", callController.CreateCall)
	calls.Post("/connect", callController.ConnectCall)
	calls.Post("/create", callController.RecordCall)
	calls.Put("/", callController.UpdateCall)

	api.Get("/user", userController.GetUsers)
	api.Post("/ask-ai", aiController.Ask)

	auth := app.Group("/api/auth")
	auth.Post("/login", userController.Login)
}

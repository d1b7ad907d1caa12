package models

import "time"

// PayloadKind names the entity an activity row points at.
type PayloadKind string

const (
	PayloadTask     PayloadKind = "task"
	PayloadMeeting  PayloadKind = "meeting"
	PayloadEmail    PayloadKind = "email"
	PayloadMessage  PayloadKind = "message"
	PayloadWhatsapp PayloadKind = "whatsapp"
)

// ActivityPayload is the tagged reference an activity carries. The zero value
// means "no payload". Write paths go through SetPayload so at most one of the
// five payload columns is ever populated on a row.
type ActivityPayload struct {
	Kind  PayloadKind
	RefID uint
}

// Activity is a timeline event on the feed of a lead, batch, trainer,
// campaign, learner or main task. The five payload columns are a tagged union
// persisted as nullable integers for wire compatibility; exactly one is
// non-null when a payload exists.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ActivityName string `gorm:"size:255;not null" json:"activityName"`
	UserID       string `gorm:"size:255" json:"userId"`

	ContextRefs `gorm:"embedded"`

	NewTaskID  *uint `gorm:"index" json:"newTaskId"`
	MeetingID  *uint `gorm:"index" json:"meetingId"`
	EmailID    *uint `gorm:"index" json:"emailId"`
	MessageID  *uint `gorm:"index" json:"messageId"`
	WhatsappID *uint `gorm:"index" json:"whatsappId"`
}

// NewActivity builds an activity for the feed. A zero payload yields a row
// with no payload reference.
func NewActivity(name string, userID string, refs ContextRefs, payload ActivityPayload) Activity {
	a := Activity{
		ActivityName: name,
		UserID:       userID,
		ContextRefs:  refs,
	}
	a.SetPayload(payload)
	return a
}

// SetPayload clears all five payload columns and sets the one matching the
// given reference, keeping the mutual-exclusion invariant.
func (a *Activity) SetPayload(p ActivityPayload) {
	a.NewTaskID, a.MeetingID, a.EmailID, a.MessageID, a.WhatsappID = nil, nil, nil, nil, nil
	if p.RefID == 0 {
		return
	}
	id := p.RefID
	switch p.Kind {
	case PayloadTask:
		a.NewTaskID = &id
	case PayloadMeeting:
		a.MeetingID = &id
	case PayloadEmail:
		a.EmailID = &id
	case PayloadMessage:
		a.MessageID = &id
	case PayloadWhatsapp:
		a.WhatsappID = &id
	}
}

// Payload reports the row's payload reference, dispatching on the first
// non-null column in the fixed precedence new-task, meeting, email, message,
// whatsapp. The second return is false when no payload column is set.
func (a *Activity) Payload() (ActivityPayload, bool) {
	switch {
	case a.NewTaskID != nil:
		return ActivityPayload{PayloadTask, *a.NewTaskID}, true
	case a.MeetingID != nil:
		return ActivityPayload{PayloadMeeting, *a.MeetingID}, true
	case a.EmailID != nil:
		return ActivityPayload{PayloadEmail, *a.EmailID}, true
	case a.MessageID != nil:
		return ActivityPayload{PayloadMessage, *a.MessageID}, true
	case a.WhatsappID != nil:
		return ActivityPayload{PayloadWhatsapp, *a.WhatsappID}, true
	}
	return ActivityPayload{}, false
}

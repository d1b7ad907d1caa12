package utils

import (
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"skillcapital/models"
)

// TwilioSender delivers SMS and WhatsApp messages. Each channel has its own
// sender identity; WhatsApp numbers carry the whatsapp: prefix on the wire.
type TwilioSender struct {
	client       *twilio.RestClient
	smsFrom      string
	whatsappFrom string
}

func NewTwilioSender(accountSID, authToken, smsFrom, whatsappFrom string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, smsFrom: smsFrom, whatsappFrom: whatsappFrom}
}

// Send dispatches one message and returns the provider message SID.
func (s *TwilioSender) Send(phoneNumber, body, messageType string) (string, error) {
	from := s.smsFrom
	to := phoneNumber
	if messageType == models.MessageTypeWhatsapp {
		from = "whatsapp:" + s.whatsappFrom
		to = "whatsapp:" + phoneNumber
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("send %s message: %w", messageType, err)
	}
	if resp.Sid == nil {
		return "", fmt.Errorf("provider returned no message sid")
	}
	return *resp.Sid, nil
}

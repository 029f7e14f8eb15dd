package services

import (
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
)

// maxSMSBody keeps a notification within a few SMS segments.
const maxSMSBody = 320

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender texts the site owner through Twilio.
type SMSSender struct {
	api  messageCreator
	from string
	to   string
}

// NewSMSSenderFromConfig returns nil unless all four TWILIO_* keys are set.
func NewSMSSenderFromConfig(cfg map[string]string) *SMSSender {
	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(cfg, "TWILIO_FROM", "")
	to := config.GetString(cfg, "TWILIO_TO", "")
	if sid == "" || token == "" || from == "" || to == "" {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return &SMSSender{api: client.Api, from: from, to: to}
}

func (s *SMSSender) SendSMS(body string) error {
	if s == nil {
		return errs.NewServiceDisabledError("SMS")
	}
	if len(body) > maxSMSBody {
		body = body[:maxSMSBody-3] + "..."
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return errs.NewServiceUnavailableError("Twilio", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}

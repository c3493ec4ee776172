package http

import (
	"github.com/vitalsign-api/internal/infrastructure/dynamo"
	"github.com/vitalsign-api/internal/infrastructure/rediskv"
	"github.com/vitalsign-api/internal/infrastructure/smtp"
	"github.com/vitalsign-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo  *dynamo.UserRepo
	KV        *rediskv.Client
	Mailer    smtp.Mailer
	SMSSender sns.SMSSender
}

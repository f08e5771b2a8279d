package httpapi

import (
	"ap-dojo/internal/logger"
	"ap-dojo/internal/quiz"
)

type API struct {
	service *quiz.Service
	log     *logger.Logger
}

func NewAPI(service *quiz.Service, log *logger.Logger) *API {
	if log == nil {
		log = logger.Nop()
	}
	return &API{
		service: service,
		log:     log,
	}
}

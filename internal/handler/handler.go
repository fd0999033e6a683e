package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	DB          *database.DB
	Cfg         *config.Config
	Logger      *zap.Logger
	Validate    *validator.Validate
}

// NewValidator builds a validator reporting failures under the json
// field names.
func NewValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

func NewHandlers(db *database.DB, service *service.Service, config *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{
		AuthService: service.Auth,
		PostService: service.Post,
		DB:          db,
		Cfg:         config,
		Logger:      logger,
		Validate:    NewValidator(),
	}
}

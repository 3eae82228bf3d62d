package app

import (
	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/utils"
)

type Config struct {
	Port        string
	FrontendURL string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:        utils.GetEnv("PORT", "8080", log),
		FrontendURL: utils.GetEnv("FRONTEND_URL", "http://localhost:3000", log),
	}
}

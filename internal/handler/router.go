package handler

import (
	"petprompt/internal/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(prompts *PromptHandler, policy middleware.CORSPolicy) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.NoCache(),
		middleware.CORS(policy),
	)

	r.POST("/get-prompt", prompts.GetPrompt)
	r.OPTIONS("/get-prompt", prompts.Options)
	r.GET("/health", prompts.GetHealth)

	return r
}

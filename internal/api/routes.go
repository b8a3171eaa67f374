package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)

		api.GET("/centres", s.centres)
		api.GET("/candidates", s.filterCandidates)
		api.GET("/candidates/:chestNo", s.lookupCandidate)

		api.GET("/idcards/:chestNo/png", s.cardPNG)
		api.GET("/idcards/pdf", s.cardsPDF)

		api.POST("/sessions", s.createSession)
		api.PUT("/sessions/:id/name", s.setName)
		api.POST("/sessions/:id/image", s.selectImage)
		api.DELETE("/sessions/:id/image", s.discardImage)
		api.POST("/sessions/:id/crop", s.confirmCrop)
		api.POST("/sessions/:id/clear", s.clearSession)
		api.POST("/sessions/:id/export", s.exportPoster)
	}
}

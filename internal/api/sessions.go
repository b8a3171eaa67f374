package api

import (
	"errors"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/festie/shefest-tools/internal/export"
	"github.com/festie/shefest-tools/internal/render"
	"github.com/festie/shefest-tools/internal/session"
)

func sessionError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	// Crop preconditions and region validation are client mistakes.
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) createSession(c *gin.Context) {
	id := s.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) setName(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := s.sessions.Update(c.Param("id"), func(st session.State) (session.State, error) {
		return st.WithName(req.Name), nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// selectImage opens the crop dialog with a freshly uploaded source
// image. The response reports the source bounds so the client can drive
// the crop viewport at the fixed poster aspect.
func (s *Server) selectImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	img, err := imaging.Decode(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image"})
		return
	}

	_, err = s.sessions.Update(c.Param("id"), func(st session.State) (session.State, error) {
		return st.WithSource(img), nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
		"aspect": render.PosterAspectW / render.PosterAspectH,
	})
}

// confirmCrop records the final region and produces the cropped photo.
func (s *Server) confirmCrop(c *gin.Context) {
	var region render.CropRegion
	if err := c.BindJSON(&region); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := s.sessions.Update(c.Param("id"), func(st session.State) (session.State, error) {
		return st.WithRegion(region).ConfirmCrop()
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"width":  st.Photo.Bounds().Dx(),
		"height": st.Photo.Bounds().Dy(),
	})
}

// discardImage closes the crop dialog, dropping the in-progress
// selection while keeping any previously confirmed photo.
func (s *Server) discardImage(c *gin.Context) {
	_, err := s.sessions.Update(c.Param("id"), func(st session.State) (session.State, error) {
		return st.CloseDialog(), nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) clearSession(c *gin.Context) {
	_, err := s.sessions.Update(c.Param("id"), func(st session.State) (session.State, error) {
		return st.Clear(), nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// exportPoster captures the composed poster as a PNG download, then
// fires the submission side-channel. The side-channel result never
// affects the response.
func (s *Server) exportPoster(c *gin.Context) {
	st, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		sessionError(c, session.ErrNotFound)
		return
	}
	if s.template == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "poster template unavailable"})
		return
	}
	if st.Photo == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no cropped photo yet"})
		return
	}
	layout, ok := render.LayoutByName(c.DefaultQuery("layout", "large"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown layout variant"})
		return
	}

	poster := render.Poster{
		Template: s.template,
		Name:     st.Name,
		Photo:    st.Photo,
		Layout:   layout,
		Fonts:    s.fonts,
	}
	data, err := s.exporter.PNG(poster)
	if err != nil {
		s.log.Error("poster export failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export poster. Please try again."})
		return
	}

	attachment(c, export.PosterFilename)
	c.Data(http.StatusOK, "image/png", data)

	if s.submitter != nil && s.submitter.Enabled() {
		s.submitter.Submit(st.Name, data)
	}
}

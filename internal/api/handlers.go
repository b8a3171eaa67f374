package api

import (
	"errors"
	"fmt"
	"image"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/festie/shefest-tools/internal/candidates"
	"github.com/festie/shefest-tools/internal/export"
	"github.com/festie/shefest-tools/internal/render"
	"github.com/festie/shefest-tools/internal/session"
	"github.com/festie/shefest-tools/internal/submit"
)

// Server wires the datasets, poster sessions, and export pipeline behind
// the HTTP surface.
type Server struct {
	data      *candidates.Store
	sessions  *session.Store
	exporter  *export.Exporter
	submitter *submit.Submitter
	fonts     *render.Fonts
	template  image.Image
	log       *log.Logger
}

func NewServer(data *candidates.Store, sessions *session.Store, exporter *export.Exporter,
	submitter *submit.Submitter, fonts *render.Fonts, template image.Image, logger *log.Logger) *Server {
	return &Server{
		data:      data,
		sessions:  sessions,
		exporter:  exporter,
		submitter: submitter,
		fonts:     fonts,
		template:  template,
		log:       logger,
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func dataUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data unavailable"})
}

func (s *Server) centres(c *gin.Context) {
	centres, err := s.data.Centres()
	if err != nil {
		dataUnavailable(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"centres": centres})
}

// filterCandidates returns the ID-card dataset filtered by study centre.
// The selected flag distinguishes "no centre chosen yet" from "centre
// chosen but empty".
func (s *Server) filterCandidates(c *gin.Context) {
	dataset, err := s.data.Cards()
	if err != nil {
		dataUnavailable(c)
		return
	}
	res := candidates.FilterByCentre(dataset, c.Query("centre"))
	c.JSON(http.StatusOK, gin.H{
		"selected":   res.Selected,
		"count":      len(res.Candidates),
		"candidates": res.Candidates,
	})
}

// lookupCandidate resolves a chest number against the poster dataset. A
// miss is a normal outcome with an inline message, not a fault.
func (s *Server) lookupCandidate(c *gin.Context) {
	dataset, err := s.data.PosterEntries()
	if err != nil {
		dataUnavailable(c)
		return
	}
	chestNo := c.Param("chestNo")
	cand, ok := candidates.Lookup(dataset, chestNo)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("No candidate found for chest number %q", chestNo),
		})
		return
	}
	c.JSON(http.StatusOK, cand)
}

// cardPhoto fetches a candidate's pre-existing photo reference,
// best-effort: any failure falls back to the placeholder glyph.
func (s *Server) cardPhoto(cand candidates.Candidate) image.Image {
	if cand.Photo == nil || *cand.Photo == "" {
		return nil
	}
	img, err := render.FetchPhoto(*cand.Photo)
	if err != nil {
		s.log.Warn("candidate photo unavailable", "chestNo", cand.ChestNo, "err", err)
		return nil
	}
	return img
}

// cardPNG serves a single-card preview capture.
func (s *Server) cardPNG(c *gin.Context) {
	dataset, err := s.data.Cards()
	if err != nil {
		dataUnavailable(c)
		return
	}
	chestNo := c.Param("chestNo")
	cand, ok := candidates.Lookup(dataset, chestNo)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("No candidate found for chest number %q", chestNo),
		})
		return
	}

	target := render.IDCard{Candidate: cand, Photo: s.cardPhoto(cand), Fonts: s.fonts}
	data, err := s.exporter.PNG(target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	attachment(c, export.CardFilename(cand.Name))
	c.Data(http.StatusOK, "image/png", data)
}

// cardsPDF assembles one A5 page per candidate of the selected centre.
func (s *Server) cardsPDF(c *gin.Context) {
	dataset, err := s.data.Cards()
	if err != nil {
		dataUnavailable(c)
		return
	}
	centre := c.Query("centre")
	res := candidates.FilterByCentre(dataset, centre)
	if !res.Selected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no study centre selected"})
		return
	}
	if len(res.Candidates) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No candidates found for this study centre."})
		return
	}

	targets := make([]export.Target, 0, len(res.Candidates))
	for _, cand := range res.Candidates {
		targets = append(targets, render.IDCard{
			Candidate: cand,
			Photo:     s.cardPhoto(cand),
			Fonts:     s.fonts,
		})
	}

	data, err := s.exporter.Document(targets, export.NewA5Builder())
	if errors.Is(err, export.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": "a batch export is already running"})
		return
	}
	if err != nil {
		s.log.Error("batch export failed", "centre", centre, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF. Please try again."})
		return
	}
	attachment(c, export.CardsPDFFilename(centre))
	c.Data(http.StatusOK, "application/pdf", data)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"onboarding_backend/internal/config"

	"github.com/gin-gonic/gin"
)

// AdvertHandler serves the static recruitment advert. No state, no database:
// the content comes from config and the only action is the WhatsApp deep
// link that starts the automated application chat.
type AdvertHandler struct {
	*BaseHandler
	advert config.Config
}

func NewAdvertHandler(base *BaseHandler, cfg *config.Config) *AdvertHandler {
	return &AdvertHandler{
		BaseHandler: base,
		advert:      *cfg,
	}
}

func (h *AdvertHandler) RegisterRoutes(r *gin.RouterGroup) {
	advert := r.Group("/advert")
	{
		advert.GET("", h.GetAdvert)
		advert.GET("/apply", h.Apply)
	}
}

type advertResponse struct {
	CompanyName  string   `json:"company_name"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Benefits     []string `json:"benefits,omitempty"`
	ApplyLink    string   `json:"apply_link"`
}

// GetAdvert returns the advert content plus the pre-filled apply link.
func (h *AdvertHandler) GetAdvert(c *gin.Context) {
	ad := h.advert.Advert
	c.JSON(http.StatusOK, advertResponse{
		CompanyName:  ad.CompanyName,
		Title:        ad.Title,
		Subtitle:     ad.Subtitle,
		Highlights:   ad.Highlights,
		Skills:       ad.Skills,
		Requirements: ad.Requirements,
		Benefits:     ad.Benefits,
		ApplyLink:    h.whatsAppLink(),
	})
}

// Apply sends the browser straight into the WhatsApp chat.
func (h *AdvertHandler) Apply(c *gin.Context) {
	c.Redirect(http.StatusFound, h.whatsAppLink())
}

func (h *AdvertHandler) whatsAppLink() string {
	ad := h.advert.Advert
	return fmt.Sprintf("https://wa.me/%s?text=%s",
		ad.WhatsAppNumber, url.QueryEscape(ad.WhatsAppMessage))
}

package web

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/subahan00/portfolio/internal/analytics"
	"github.com/subahan00/portfolio/internal/contact"
	"github.com/subahan00/portfolio/internal/content"
	"github.com/subahan00/portfolio/internal/metrics"
	"github.com/subahan00/portfolio/internal/showcase"
)

type pageHandler struct {
	site            *content.Site
	relay           *contact.Relay
	limiter         *contact.Limiter
	store           *analytics.Store
	retentionMonths int
}

// ShowcaseView is the data behind showcase.html.
type ShowcaseView struct {
	ActiveID  string
	Tiles     []showcase.Tile
	Detail    showcase.DetailView
	HasDetail bool
}

func (h *pageHandler) showcaseView(sel showcase.Selection) ShowcaseView {
	detail, ok := showcase.Detail(h.site.Catalog, sel.ActiveID())
	return ShowcaseView{
		ActiveID:  sel.ActiveID(),
		Tiles:     showcase.Tiles(h.site.Layout, h.site.Catalog, sel.ActiveID()),
		Detail:    detail,
		HasDetail: ok,
	}
}

// currentSelection rebuilds the visitor's selection from ?active=. Unknown ids
// fall back to the default project.
func (h *pageHandler) currentSelection(c *gin.Context) showcase.Selection {
	return h.site.Selection().Select(h.site.Catalog, c.Query("active"))
}

func (h *pageHandler) pageData(sel showcase.Selection, status *contact.Status) gin.H {
	return gin.H{
		"Profile":        h.site.Profile,
		"About":          h.site.About,
		"Contact":        h.site.Contact,
		"Showcase":       h.showcaseView(sel),
		"ContactStatus":  status,
		"LoadingMessage": contact.MessageLoading,
		"Year":           time.Now().Year(),
	}
}

func (h *pageHandler) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.pageData(h.currentSelection(c), nil))
}

// selectProject applies a tile click and re-renders the grid and detail panel.
func (h *pageHandler) selectProject(c *gin.Context) {
	sel := h.currentSelection(c)

	if i, err := strconv.Atoi(c.Query("slot")); err == nil {
		slot := h.site.Layout.At(i)
		if !slot.Empty() && h.site.Catalog.Has(slot.ProjectID) {
			sel = sel.Click(h.site.Catalog, h.site.Layout, i)
			h.recordSelection(c, sel.ActiveID())
		}
	}

	c.HTML(http.StatusOK, "showcase.html", h.showcaseView(sel))
}

func (h *pageHandler) recordSelection(c *gin.Context, projectID string) {
	metrics.ProjectSelected(projectID)
	if h.store == nil || c.GetHeader("DNT") == "1" {
		return
	}
	ip := c.ClientIP()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.store.RecordSelection(ctx, ip, projectID); err != nil {
			log.Printf("[analytics] %v", err)
		}
	}()
}

// relayContact binds, rate limits and relays one form post. It returns the
// status to show and the HTTP code a non-HTMX client should see.
func (h *pageHandler) relayContact(c *gin.Context) (contact.Status, int) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil || strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Message) == "" {
		log.Printf("[contact] request %s rejected invalid form: %v", RequestID(c.Request.Context()), err)
		return contact.Invalid, http.StatusUnprocessableEntity
	}

	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		log.Printf("[contact] request %s rate limited", RequestID(c.Request.Context()))
		return contact.Limited, http.StatusTooManyRequests
	}

	sub := contact.NewSubmission(form)
	log.Printf("[contact] request %s relaying submission %s", RequestID(c.Request.Context()), sub.ID)
	status := h.relay.Submit(c.Request.Context(), sub)
	h.recordContact(c, sub.ID, status)

	if !status.OK() {
		return status, http.StatusBadGateway
	}
	return status, http.StatusOK
}

func (h *pageHandler) recordContact(c *gin.Context, submissionID string, status contact.Status) {
	provider := h.relay.Provider()
	metrics.ContactSubmitted(provider, string(status.Type))
	if h.store == nil {
		return
	}
	ip := c.ClientIP()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.store.RecordContact(ctx, ip, submissionID, provider, string(status.Type)); err != nil {
			log.Printf("[analytics] %v", err)
		}
	}()
}

// submitContact answers HTMX form posts with the status fragment and plain
// form posts with the full page.
func (h *pageHandler) submitContact(c *gin.Context) {
	status, code := h.relayContact(c)

	if isHTMX(c) {
		// htmx only swaps 2xx responses, so failures ride on 200 too.
		if status.OK() {
			c.Header("HX-Trigger", "contact-sent")
		}
		c.HTML(http.StatusOK, "contact-status.html", status)
		return
	}

	c.HTML(code, "index.html", h.pageData(h.currentSelection(c), &status))
}

func (h *pageHandler) submitContactJSON(c *gin.Context) {
	status, code := h.relayContact(c)
	c.JSON(code, status)
}

func (h *pageHandler) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title":           "Privacy Policy",
		"retentionMonths": h.retentionMonths,
	})
}

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("HX-Request"), "true")
}

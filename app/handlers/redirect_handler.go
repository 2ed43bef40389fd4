package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/linkdeck/linkdeck/app/dto"
	businessflow "github.com/linkdeck/linkdeck/business_flow"
	"github.com/linkdeck/linkdeck/utils"
)

// RedirectHandlerInterface defines the contract for public identifier resolution
type RedirectHandlerInterface interface {
	Visit(c fiber.Ctx) error
	Resolve(c fiber.Ctx) error
}

// RedirectHandler serves the public /:username/:identifier surface. A resolved
// target redirects the visitor; clicks on social links are recorded without
// blocking the redirect.
type RedirectHandler struct {
	resolveFlow   businessflow.ResolveFlow
	analyticsFlow businessflow.AnalyticsFlow
	redirectDelay time.Duration
}

func NewRedirectHandler(resolveFlow businessflow.ResolveFlow, analyticsFlow businessflow.AnalyticsFlow, redirectDelay time.Duration) *RedirectHandler {
	return &RedirectHandler{
		resolveFlow:   resolveFlow,
		analyticsFlow: analyticsFlow,
		redirectDelay: redirectDelay,
	}
}

// Visit resolves an identifier and redirects the visitor
// @Summary Visit Profile Link
// @Description Resolve a username/identifier pair and redirect to its target
// @Tags Redirect
// @Produce html
// @Param username path string true "Profile username"
// @Param identifier path string true "Link or document identifier"
// @Success 302 {string} string "Redirect"
// @Failure 404 {object} any
// @Router /{username}/{identifier} [get]
func (h *RedirectHandler) Visit(c fiber.Ctx) error {
	username := c.Params("username")
	identifier := c.Params("identifier")

	target, err := h.resolveFlow.Resolve(h.createRequestContext(c, "/:username/:identifier"), username, identifier)
	if err != nil {
		log.Println("Resolution failed", err)
		return c.Status(fiber.StatusNotFound).SendString("not found")
	}
	if !target.IsFound() {
		return c.Status(fiber.StatusNotFound).SendString("not found")
	}

	if target.Kind == dto.TargetKindLink && target.LinkID != "" {
		h.recordClickAsync(c, target.LinkID)
	}

	// A zero delay redirects immediately; a positive delay serves a small
	// interstitial so the visitor sees where they are going.
	if h.redirectDelay <= 0 {
		return c.Redirect().Status(fiber.StatusFound).To(target.URL)
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	seconds := int(h.redirectDelay.Round(time.Second).Seconds())
	return c.SendString(fmt.Sprintf(
		`<!DOCTYPE html><html><head><meta http-equiv="refresh" content="%d;url=%s"></head><body>Redirecting...</body></html>`,
		seconds, target.URL,
	))
}

// Resolve returns the redirect state as JSON for client-side rendering
// @Summary Resolve Identifier
// @Description Resolve a username/identifier pair to its redirect state
// @Tags Redirect
// @Produce json
// @Param username path string true "Profile username"
// @Param identifier path string true "Link or document identifier"
// @Success 200 {object} dto.RedirectStateResponse "Redirect state"
// @Router /api/v1/resolve/{username}/{identifier} [get]
func (h *RedirectHandler) Resolve(c fiber.Ctx) error {
	username := c.Params("username")
	identifier := c.Params("identifier")

	target, err := h.resolveFlow.Resolve(h.createRequestContext(c, "/api/v1/resolve/:username/:identifier"), username, identifier)
	if err != nil {
		log.Println("Resolution failed", err)
		return c.Status(fiber.StatusOK).JSON(dto.RedirectStateResponse{NotFound: true})
	}
	if !target.IsFound() {
		return c.Status(fiber.StatusOK).JSON(dto.RedirectStateResponse{NotFound: true})
	}

	if target.Kind == dto.TargetKindLink && target.LinkID != "" {
		h.recordClickAsync(c, target.LinkID)
	}

	return c.Status(fiber.StatusOK).JSON(dto.RedirectStateResponse{
		NotFound:    false,
		RedirectURL: &target.URL,
	})
}

// recordClickAsync fires the click event on a detached context so a slow or
// failing analytics write never delays the redirect.
func (h *RedirectHandler) recordClickAsync(c fiber.Ctx, linkID string) {
	id, err := uuid.Parse(linkID)
	if err != nil {
		return
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetReferrer(c.Get("Referer"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), utils.StoreCallTimeout)
		defer cancel()
		h.analyticsFlow.RecordClick(ctx, id, metadata)
	}()
}

func (h *RedirectHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}

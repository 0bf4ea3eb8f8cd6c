package constants

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"

	"github.com/wichananm65/wp-envconfig/internal/audit"
	"github.com/wichananm65/wp-envconfig/internal/render"
	"github.com/wichananm65/wp-envconfig/internal/wpconfig"
)

// RevealClaim must be true in the caller's token to receive unmasked secrets.
const RevealClaim = "reveal"

type Handler struct {
	set   *wpconfig.Set
	audit *audit.Service
}

func NewHandler(set *wpconfig.Set, auditService *audit.Service) *Handler {
	return &Handler{set: set, audit: auditService}
}

// Protect rejects requests without a valid HS256 bearer token.
func Protect(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	})
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/health", h.health)
}

func (h *Handler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/api/v1/constants", h.list)
	router.Get("/api/v1/constants.php", h.php)
	router.Get("/api/v1/constants/:key", h.get)
	router.Get("/api/v1/loads", h.loads)
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "ok",
		"loadId":      h.set.LoadID().String(),
		"environment": h.set.Environment(),
	})
}

func (h *Handler) list(c *fiber.Ctx) error {
	reveal := c.Query("reveal") == "1" && canReveal(c)
	return c.JSON(render.NewDocument(h.set, !reveal))
}

func (h *Handler) php(c *fiber.Ctx) error {
	if !canReveal(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "token may not reveal secrets"})
	}
	c.Set(fiber.HeaderContentType, "application/x-httpd-php; charset=utf-8")
	return c.SendString(render.PHP(h.set, false))
}

func (h *Handler) get(c *fiber.Ctx) error {
	key := c.Params("key")
	v, ok := h.set.Get(key)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "constant " + key + " is not defined"})
	}
	var value any = v.Interface()
	if render.Sensitive(key) && !canReveal(c) {
		value = "***"
	}
	return c.JSON(fiber.Map{"key": key, "kind": v.Kind().String(), "value": value})
}

func (h *Handler) loads(c *fiber.Ctx) error {
	limit := 20
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	recs, err := h.audit.Recent(limit)
	if err != nil {
		log.WithError(err).Error("list config loads")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to list loads"})
	}
	return c.JSON(recs)
}

func canReveal(c *fiber.Ctx) bool {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	reveal, _ := claims[RevealClaim].(bool)
	return reveal
}

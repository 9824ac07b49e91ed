package integrity

import (
	"errors"

	"collbool/core/logger"
	"collbool/core/utils"
	"collbool/feature/integrity/checks"
	"collbool/feature/scene"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.ServerReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/server", h.HandleServerCheck)
	group.Get("/scenes", h.HandleScenesCheck)
	group.Get("/scenes/:scene", h.HandleSceneCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Structure, Server, Scenes).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if srvReport, err := h.service.CheckServer(); err != nil {
		report["server"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["server"] = srvReport
	}

	if scenes, err := h.service.CheckScenes(ctx); err != nil {
		report["scenes"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["scenes"] = scenes
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks if the scene prefix exists in the storage bucket. Optionally creates it.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleServerCheck checks database schema integrity.
// @Summary Check Server Schema
// @Description Checks if the scenes table matches the expected model.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.ServerReport "Server Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/server [get]
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting server schema check")

	report, err := h.service.CheckServer()
	if err != nil {
		l.Error("Server schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleScenesCheck audits every stored scene.
// @Summary Check All Scenes
// @Description Audits every stored scene for generated effects and target displays that differ from the converged state.
// @Tags integrity
// @Produce json
// @Success 200 {array} checks.InvariantReport "Scene Reports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/scenes [get]
func (h *Handler) HandleScenesCheck(c *fiber.Ctx) error {
	reports, err := h.service.CheckScenes(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Scene audit failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// HandleSceneCheck audits one stored scene.
// @Summary Check Scene
// @Description Audits one stored scene without modifying it.
// @Tags integrity
// @Produce json
// @Param scene path string true "Scene name"
// @Success 200 {object} checks.InvariantReport "Scene Report"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/scenes/{scene} [get]
func (h *Handler) HandleSceneCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckScene(c.Context(), c.Params("scene"))
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, scene.ErrSceneNotFound) {
			status = fiber.StatusNotFound
		}
		l.Error("Scene audit failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Consistent {
		l.Warn("Scene is not converged", zap.String("scene", report.Scene), zap.Int("violations", len(report.Violations)))
	}
	return c.JSON(report)
}

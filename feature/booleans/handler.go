package booleans

import (
	"errors"

	"collbool/core/logger"
	"collbool/core/reconcile"
	"collbool/core/utils"
	"collbool/feature/scene"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for collection booleans.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the collection boolean routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/scenes")
	group.Get("/", h.HandleListScenes)
	group.Post("/:scene/reconcile", h.HandleReconcile)
	group.Post("/:scene/undo", h.HandleUndo)

	objects := group.Group("/:scene/objects/:object")
	objects.Get("/", h.HandleGetObject)
	objects.Put("/enabled", h.HandleSetEnabled)
	objects.Put("/slots/:slot", h.HandleAssignSlot)
	objects.Get("/slots/:slot/candidates", h.HandleCandidates)
	objects.Post("/bake", h.HandleBake)
}

// HandleListScenes lists the stored scenes.
// @Summary List Scenes
// @Description List the names of all stored scenes.
// @Tags booleans
// @Produce json
// @Success 200 {array} string "Scene names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scenes [get]
func (h *Handler) HandleListScenes(c *fiber.Ctx) error {
	names, err := h.service.Scenes(c.Context())
	if err != nil {
		return h.fail(c, "List scenes failed", err)
	}
	return c.JSON(names)
}

// HandleGetObject returns an object's settings and effect stack.
// @Summary Get Object
// @Description Get the boolean settings, display and effect stack of an object.
// @Tags booleans
// @Produce json
// @Param scene path string true "Scene name"
// @Param object path string true "Object name"
// @Success 200 {object} booleans.ObjectView "Object"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /scenes/{scene}/objects/{object} [get]
func (h *Handler) HandleGetObject(c *fiber.Ctx) error {
	view, err := h.service.Object(c.Context(), c.Params("scene"), c.Params("object"))
	if err != nil {
		return h.fail(c, "Get object failed", err)
	}
	return c.JSON(view)
}

// HandleSetEnabled toggles collection booleans for a mesh.
// @Summary Set Enabled
// @Description Enable or disable collection booleans for a mesh object. Disabling removes every generated effect.
// @Tags booleans
// @Accept json
// @Produce json
// @Param scene path string true "Scene name"
// @Param object path string true "Object name"
// @Param body body map[string]bool true "{\"enabled\": true}"
// @Success 200 {object} booleans.ObjectView "Object"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Not a mesh"
// @Router /scenes/{scene}/objects/{object}/enabled [put]
func (h *Handler) HandleSetEnabled(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	raw, ok := body["enabled"]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enabled is required"})
	}

	view, err := h.service.SetEnabled(c.Context(), c.Params("scene"), c.Params("object"), utils.ToBool(raw))
	if err != nil {
		return h.fail(c, "Set enabled failed", err)
	}
	return c.JSON(view)
}

// HandleAssignSlot assigns or clears one operation slot.
// @Summary Assign Slot
// @Description Assign a collection to the difference, union or intersect slot. A null collection clears the slot.
// @Tags booleans
// @Accept json
// @Produce json
// @Param scene path string true "Scene name"
// @Param object path string true "Object name"
// @Param slot path string true "Slot (difference, union, intersect)"
// @Param body body map[string]string true "{\"collection\": \"Cutters\"}"
// @Success 200 {object} booleans.ObjectView "Object"
// @Failure 400 {object} map[string]string "Invalid slot"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "Collection not assignable"
// @Router /scenes/{scene}/objects/{object}/slots/{slot} [put]
func (h *Handler) HandleAssignSlot(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	collection := ""
	if raw := body["collection"]; raw != nil {
		collection = utils.ToString(raw)
	}

	view, err := h.service.AssignSlot(c.Context(), c.Params("scene"), c.Params("object"), c.Params("slot"), collection)
	if err != nil {
		return h.fail(c, "Assign slot failed", err)
	}
	return c.JSON(view)
}

// HandleCandidates lists the collections selectable for a slot.
// @Summary Slot Candidates
// @Description List collections that pass the assignment rule for a slot.
// @Tags booleans
// @Produce json
// @Param scene path string true "Scene name"
// @Param object path string true "Object name"
// @Param slot path string true "Slot (difference, union, intersect)"
// @Success 200 {array} string "Collection names"
// @Failure 400 {object} map[string]string "Invalid slot"
// @Router /scenes/{scene}/objects/{object}/slots/{slot}/candidates [get]
func (h *Handler) HandleCandidates(c *fiber.Ctx) error {
	names, err := h.service.Candidates(c.Context(), c.Params("scene"), c.Params("object"), c.Params("slot"))
	if err != nil {
		return h.fail(c, "List candidates failed", err)
	}
	return c.JSON(names)
}

// HandleBake freezes an object's generated effects into geometry.
// @Summary Bake Object
// @Description Apply every generated effect of an object and disable collection booleans for it. Other objects that use the same collections are not affected.
// @Tags booleans
// @Produce json
// @Param scene path string true "Scene name"
// @Param object path string true "Object name"
// @Success 200 {object} reconcile.BakeReport "Bake report"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Bake in progress"
// @Failure 422 {object} map[string]string "Object not eligible"
// @Router /scenes/{scene}/objects/{object}/bake [post]
func (h *Handler) HandleBake(c *fiber.Ctx) error {
	report, err := h.service.Bake(c.Context(), c.Params("scene"), c.Params("object"))
	if err != nil {
		return h.fail(c, "Bake failed", err)
	}
	logger.WithRayID(h.service.logger, c).Info(report.Message,
		zap.String("object", report.Object),
		zap.Int("applied", report.Applied),
		zap.Int("dropped", report.Dropped))
	return c.JSON(report)
}

// HandleReconcile runs one reconcile pass over a scene.
// @Summary Reconcile Scene
// @Description Run one reconcile pass. With dry_run=true the pass runs on a copy and nothing is saved.
// @Tags booleans
// @Produce json
// @Param scene path string true "Scene name"
// @Param dry_run query bool false "Report without saving"
// @Success 200 {object} reconcile.PassReport "Pass report"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /scenes/{scene}/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	dryRun := utils.ToBool(c.Query("dry_run"))
	report, err := h.service.Reconcile(c.Context(), c.Params("scene"), dryRun)
	if err != nil {
		return h.fail(c, "Reconcile failed", err)
	}
	return c.JSON(report)
}

// HandleUndo reverts the most recent undo step of a scene.
// @Summary Undo
// @Description Revert the most recent recorded step, such as a bake.
// @Tags booleans
// @Produce json
// @Param scene path string true "Scene name"
// @Success 200 {object} map[string]string "Reverted step"
// @Failure 409 {object} map[string]string "Nothing to undo"
// @Router /scenes/{scene}/undo [post]
func (h *Handler) HandleUndo(c *fiber.Ctx) error {
	label, err := h.service.Undo(c.Context(), c.Params("scene"))
	if err != nil {
		return h.fail(c, "Undo failed", err)
	}
	return c.JSON(fiber.Map{"undone": label})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err), zap.Int("status", status))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, scene.ErrSceneNotFound),
		errors.Is(err, scene.ErrObjectNotFound),
		errors.Is(err, scene.ErrCollectionNotFound),
		errors.Is(err, reconcile.ErrObjectNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidSlot):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotAssignable),
		errors.Is(err, reconcile.ErrNotMesh),
		errors.Is(err, reconcile.ErrNotEnabled):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, reconcile.ErrBakeInProgress),
		errors.Is(err, scene.ErrNothingToUndo):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

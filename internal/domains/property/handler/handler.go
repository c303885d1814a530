package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"propertypro-backend/internal/domains/property/model"
	"propertypro-backend/internal/domains/property/service"
	"propertypro-backend/internal/shared/authz"
	"propertypro-backend/internal/shared/middleware"
	"propertypro-backend/internal/shared/response"
	"propertypro-backend/pkg/logger"
)

const imageField = "image"

// PropertyHandler handles HTTP requests for property domain
type PropertyHandler struct {
	service service.ServiceInterface
}

func NewPropertyHandler(service service.ServiceInterface) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// RegisterRoutes gắn property routes vào group. auth bảo vệ các route mutate.
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/properties", h.ListProperties)
	rg.GET("/property", h.ListProperties)
	rg.GET("/property/:id", h.GetProperty)

	rg.POST("/property", auth, middleware.ValidateBody(model.CreatePropertySchema), h.CreateProperty)
	rg.PATCH("/property/:id", auth, middleware.ValidateBody(model.UpdatePropertySchema), h.UpdateProperty)
	rg.PATCH("/property/:id/sold", auth, h.MarkSold)
	rg.DELETE("/property/:id", auth, h.DeleteProperty)
}

// ListProperties handles GET /properties và GET /property?type=
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	var (
		items []*model.PropertyResponse
		err   error
	)
	if propertyType, ok := c.GetQuery("type"); ok {
		items, err = h.service.ListByType(c.Request.Context(), propertyType)
	} else {
		items, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// GetProperty handles GET /property/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, ok := parseID(c, model.MsgNotFound)
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CreateProperty handles POST /property (multipart: image + scalar fields)
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		response.Forbidden(c, authz.ReasonCreate)
		return
	}

	image, err := readImage(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	req, err := model.NewCreatePropertyRequest(middleware.Payload(c), image)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// UpdateProperty handles PATCH /property/:id
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c, model.MsgUpdateNotFound)
	if !ok {
		return
	}

	req := model.NewUpdatePropertyRequest(middleware.Payload(c))
	result, err := h.service.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// MarkSold handles PATCH /property/:id/sold
func (h *PropertyHandler) MarkSold(c *gin.Context) {
	id, ok := parseID(c, model.MsgNotFound)
	if !ok {
		return
	}

	result, err := h.service.MarkSold(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// DeleteProperty handles DELETE /property/:id
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c, model.MsgDeleteNotFound)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Property deleted successfully")
}

// ========================================
// HELPERS
// ========================================

// parseID: id không phải số nguyên dương thì coi như không tồn tại
func parseID(c *gin.Context, notFound string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, notFound)
		return 0, false
	}
	return id, true
}

func readImage(c *gin.Context) (*model.ImageFile, error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		return nil, model.NewImageRequired()
	}

	f, err := fh.Open()
	if err != nil {
		return nil, model.NewInvalidImage(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, model.NewInvalidImage(err)
	}
	if len(data) == 0 {
		return nil, model.NewImageRequired()
	}

	return &model.ImageFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *PropertyHandler) handleError(c *gin.Context, err error) {
	status, message := model.MapErrorToHTTP(err)

	switch {
	case status == http.StatusForbidden:
		response.Forbidden(c, message)
	case model.IsValidation(err):
		response.ValidationFailed(c, []string{message})
	case status == http.StatusNotFound:
		response.NotFound(c, message)
	case status == http.StatusBadGateway:
		_ = c.Error(err)
		response.BadGateway(c, message)
	case status == http.StatusInternalServerError:
		logger.Error("property request failed", err, map[string]interface{}{"path": c.FullPath()})
		_ = c.Error(err)
		response.InternalServerError(c, message)
	default:
		response.ErrorResponse(c, status, message)
	}
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"clothing-catalog/internal/models"
	"clothing-catalog/internal/repository"
)

var jsonFieldNames sync.Once

// useJSONFieldNames makes validation errors name fields the way clients send them.
func useJSONFieldNames() {
	jsonFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

type BannerHandler struct {
	repo repository.Catalog
	log  *zap.Logger
}

// NewBannerHandler wires the banner endpoints.
func NewBannerHandler(repo repository.Catalog, log *zap.Logger) *BannerHandler {
	useJSONFieldNames()
	if log == nil {
		log = zap.NewNop()
	}
	return &BannerHandler{repo: repo, log: log}
}

// GET /banners
func (h *BannerHandler) ListBanners(c *gin.Context) {
	banners, err := h.repo.ListBanners(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, banners)
}

// POST /banners
func (h *BannerHandler) AddBanner(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingMessage(err)})
		return
	}

	err := h.repo.InsertBanner(c.Request.Context(), &banner)
	if errors.Is(err, repository.ErrBannerExists) {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: fmt.Sprintf("Banner for category '%s' already exists.", banner.Category),
		})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("banner added", zap.String("category", banner.Category))
	c.JSON(http.StatusCreated, MessageResponse{Message: "Banner added successfully"})
}

// bindingMessage lists missing fields as "x is required"; other bind errors
// pass through unchanged.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fe.Field()+" is required")
		} else {
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

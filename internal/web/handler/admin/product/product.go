// Package product serves the product catalogue of the admin api and its image uploads.
package product

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/auth"
	dbresource "github.com/ajadmin/ajadmin/internal/db/controller/resource"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/storage"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/resource"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

const (
	columnFeatured   = "featured_image"
	columnAdditional = "additional_images"

	fieldImage          = "image"
	fieldMultipleImages = "multipleImages"
)

// Service registers the product routes.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the product resource and the image uploads.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	if err := Resource().Init(router, env); err != nil {
		return err
	}

	router.Post("/uploadProductImages", s.UploadImages)
	router.Post("/updateProductImages", s.UpdateImages)

	return nil
}

// Resource returns the list and CRUD routes of products.
func Resource() *resource.Resource[models.Product, *models.Product] {
	return &resource.Resource[models.Product, *models.Product]{
		Stem:   "product",
		Module: auth.ModuleProduct,
		Table: dbresource.Table{
			Search:  []string{"product_name", "model"},
			Preload: []string{"Category", "Color", "Size"},
		},
		Keep:    []string{columnFeatured, columnAdditional},
		IDField: "product_id",
		BeforeCreate: func(_ *fiber.Ctx, _ *handler.Env, rec *models.Product) error {
			rec.Slug = slug.Make(rec.ProductName)

			return nil
		},
		BeforeUpdate: func(_ *fiber.Ctx, _ *handler.Env, _ uint64, rec *models.Product) error {
			rec.Slug = slug.Make(rec.ProductName)

			return nil
		},
		AfterUpdate: dropImages,
		Images: func(rec *models.Product) (string, []string) {
			return storage.DirProduct, rec.Images()
		},
	}
}

// dropImages removes the additional images listed in deletedImages from the product and the store.
func dropImages(c *fiber.Ctx, env *handler.Env, id uint64, rec *models.Product) error {
	if len(rec.DeletedImages) == 0 {
		return nil
	}

	stored, err := dbresource.Get[models.Product](env.DB, id)
	if err != nil {
		return fmt.Errorf("failed to load product images: %w", err)
	}

	kept := slices.DeleteFunc(slices.Clone(stored.AdditionalImages), func(name string) bool {
		return slices.Contains(rec.DeletedImages, name)
	})

	err = env.DB.Model(&models.Product{}).Where("id = ?", id).
		Select(columnAdditional).
		Updates(&models.Product{AdditionalImages: kept}).Error
	if err != nil {
		return fmt.Errorf("failed to drop product images: %w", err)
	}

	storage.Unlink(c.UserContext(), env.Images, storage.DirProduct, rec.DeletedImages...)

	return nil
}

// UploadImages stores the featured image and the additional images of a new product.
func (s *Service) UploadImages(c *fiber.Ctx) error {
	return s.setImages(c, false)
}

// UpdateImages stores new images of a product. The additional images named in
// oldAdditional are kept, and so is oldImage unless a new featured image arrives.
func (s *Service) UpdateImages(c *fiber.Ctx) error {
	return s.setImages(c, true)
}

func (s *Service) setImages(c *fiber.Ctx, update bool) error {
	id, err := resource.QueryID(c)
	if err != nil {
		return response.Fail(c, response.MsgUpdateFailed)
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Debug().Err(err).Uint64("id", id).Msg("Unreadable product image form")

		return response.Fail(c, response.MsgUpdateFailed)
	}

	var saved []string

	featured := ""

	for _, fh := range form.File[fieldImage] {
		name, err := resource.SaveUpload(c, s.env.Images, storage.DirProduct, fh)
		if err != nil {
			return s.uploadFailed(c, id, err, saved)
		}

		saved = append(saved, name)
		featured = name
	}

	additional := []string{}

	for _, fh := range form.File[fieldMultipleImages] {
		name, err := resource.SaveUpload(c, s.env.Images, storage.DirProduct, fh)
		if err != nil {
			return s.uploadFailed(c, id, err, saved)
		}

		saved = append(saved, name)
		additional = append(additional, name)
	}

	oldImage := c.FormValue("oldImage")

	if update {
		additional = append(additional, splitList(c.FormValue("oldAdditional"))...)

		if featured == "" {
			featured = oldImage
		}
	}

	err = s.env.DB.Model(&models.Product{}).Where("id = ?", id).
		Select(columnFeatured, columnAdditional).
		Updates(&models.Product{FeaturedImage: featured, AdditionalImages: additional}).Error
	if err != nil {
		return s.uploadFailed(c, id, err, saved)
	}

	if update && featured != oldImage {
		storage.Unlink(c.UserContext(), s.env.Images, storage.DirProduct, oldImage)
	}

	log.Info().Uint64("id", id).Int("files", len(saved)).Msg("Product images stored")

	return response.OK(c, response.MsgImageAdded)
}

func (s *Service) uploadFailed(c *fiber.Ctx, id uint64, err error, saved []string) error {
	log.Error().Err(err).Uint64("id", id).Msg("Failed to store product images")
	storage.Unlink(c.UserContext(), s.env.Images, storage.DirProduct, saved...)

	return response.Fail(c, response.MsgUpdateFailed)
}

func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

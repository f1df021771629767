// Package shop serves the public storefront api mounted at /api/v1/shop.
// None of its routes need an identity.
package shop

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	dborder "github.com/ajadmin/ajadmin/internal/db/controller/order"
	dbresource "github.com/ajadmin/ajadmin/internal/db/controller/resource"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

const (
	// Path is the route group of the storefront.
	Path = handler.APIPath + "/shop"

	msgSlugOrID   = "Slug or Id is required."
	msgIDRequired = "Id is required."
	msgQueryError = "Query error:"
)

// Service is the storefront handler service.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the storefront handler.
var Handler = Service{}

// Init registers the storefront routes.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	router.Get("/products/:category", s.Products)
	router.Get("/product/get", s.Product)
	router.Get("/blogs/get", s.Blogs)
	router.Get("/blog/get", s.Blog)
	router.Get("/orders/get", s.Orders)
	router.Post("/orders/save", s.SaveOrder)

	return nil
}

// Products answers the active products whose category name contains :category.
func (s *Service) Products(c *fiber.Ctx) error {
	categories := dbresource.Keyword(s.env.DB.Model(&models.Category{}).Select("id"), []string{"name"}, c.Params("category"))

	products := []models.Product{}

	err := s.env.DB.Preload("Category").Preload("Tax").
		Where("is_active = ?", true).
		Where("category_id IN (?)", categories).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		log.Error().Err(err).Str("category", c.Params("category")).Msg("Failed to list products")

		return response.ServerError(c, err)
	}

	return response.Data(c, products)
}

// Product answers the products with ?slug= as list, or the product with ?id=.
func (s *Service) Product(c *fiber.Ctx) error {
	return bySlugOrID[models.Product](c, s.env.DB, "Category", "Tax")
}

// Blogs answers the published blogs with their category.
func (s *Service) Blogs(c *fiber.Ctx) error {
	blogs := []models.Blog{}

	err := s.env.DB.Preload("BlogCategory").Where("published = ?", true).Order("publish_date DESC").Find(&blogs).Error
	if err != nil {
		log.Error().Err(err).Msg("Failed to list blogs")

		return response.ServerError(c, err)
	}

	return response.Data(c, blogs)
}

// Blog answers the blogs with ?slug= as list, or the blog with ?id=.
func (s *Service) Blog(c *fiber.Ctx) error {
	return bySlugOrID[models.Blog](c, s.env.DB, "BlogCategory")
}

func bySlugOrID[T any](c *fiber.Ctx, db *gorm.DB, preload ...string) error {
	slug, rawID := c.Query("slug"), c.Query("id")

	switch {
	case slug != "":
		tx := db
		for _, p := range preload {
			tx = tx.Preload(p)
		}

		items := []T{}
		if err := tx.Where("slug = ?", slug).Find(&items).Error; err != nil {
			log.Error().Err(err).Str("slug", slug).Msg("Slug lookup failed")

			return response.ServerError(c, err)
		}

		return response.Data(c, items)
	case rawID != "":
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			return response.Fail(c, msgQueryError)
		}

		rec, err := dbresource.Get[T](db, id, preload...)
		if errors.Is(err, dbresource.ErrNotFound) {
			return c.JSON(fiber.Map{"status": true, "data": nil})
		}

		if err != nil {
			log.Error().Err(err).Uint64("id", id).Msg("Id lookup failed")

			return response.ServerError(c, err)
		}

		return response.Data(c, rec)
	default:
		return response.Fail(c, msgSlugOrID)
	}
}

// Orders answers the orders of the customer ?userid=.
func (s *Service) Orders(c *fiber.Ctx) error {
	raw := c.Query("userid")
	if raw == "" {
		return response.Fail(c, msgIDRequired)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return response.Fail(c, msgQueryError)
	}

	orders, err := dborder.ForCustomer(s.env.DB, id)
	if err != nil {
		log.Error().Err(err).Uint64("customer", id).Msg("Failed to list orders")

		return response.ServerError(c, err)
	}

	return response.Data(c, orders)
}

// SaveOrder places a storefront order. Items leave stock by quantity.
func (s *Service) SaveOrder(c *fiber.Ctx) error {
	var o models.Order
	if err := c.BodyParser(&o); err != nil {
		return response.InvalidParams(c)
	}

	if err := s.env.Validator.Struct(&o); err != nil {
		log.Debug().Err(err).Msg("Order validation failed")

		return response.InvalidParams(c)
	}

	o.Status = nil

	err := dborder.Create(s.env.DB, &o, dborder.ByQuantity)

	switch {
	case errors.Is(err, dborder.ErrStock):
		log.Error().Err(err).Str("order", o.OrderID).Msg("Stock change failed")

		return response.Fail(c, response.MsgUpdateFailed)
	case err != nil:
		log.Error().Err(err).Msg("Failed to save order")

		return response.ServerError(c, err)
	}

	log.Info().Str("order", o.OrderID).Uint64("customer", o.CustomerID).Msg("Storefront order placed")

	return response.OK(c, response.MsgAdded)
}

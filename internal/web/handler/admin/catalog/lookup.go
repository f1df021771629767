package catalog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	dbresource "github.com/ajadmin/ajadmin/internal/db/controller/resource"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

const (
	statusColumn  = "status"
	invalidCoupon = "Invalid Coupon Code"
)

// customerOption is the part of a customer the order form may show.
type customerOption struct {
	ID        uint64 `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"isActive"`
}

// ProductOptions answers the active sizes, colors, categories and taxes of the product form.
func (s *Service) ProductOptions(c *fiber.Ctx) error {
	sizes, err := dbresource.Active[models.Size](s.env.DB, statusColumn)
	if err != nil {
		return lookupFailed(c, "cscp", err)
	}

	colors, err := dbresource.Active[models.Color](s.env.DB, statusColumn)
	if err != nil {
		return lookupFailed(c, "cscp", err)
	}

	categories, err := dbresource.Active[models.Category](s.env.DB, statusColumn)
	if err != nil {
		return lookupFailed(c, "cscp", err)
	}

	taxes, err := dbresource.Active[models.Tax](s.env.DB, statusColumn)
	if err != nil {
		return lookupFailed(c, "cscp", err)
	}

	return response.Data(c, []fiber.Map{{
		"SizeData":     sizes,
		"ColorData":    colors,
		"CategoryData": categories,
		"TaxData":      taxes,
	}})
}

// OrderOptions answers the active customers and currencies of the order form.
func (s *Service) OrderOptions(c *fiber.Ctx) error {
	customers := []customerOption{}

	err := s.env.DB.Model(&models.Customer{}).
		Select("id", "first_name", "last_name", "is_active").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&customers).Error
	if err != nil {
		return lookupFailed(c, "cco", err)
	}

	currencies, err := dbresource.Active[models.Currency](s.env.DB, statusColumn)
	if err != nil {
		return lookupFailed(c, "cco", err)
	}

	return response.Data(c, []fiber.Map{{
		"customerData": customers,
		"currencyData": currencies,
	}})
}

// Products answers the active products together with their tax.
func (s *Service) Products(c *fiber.Ctx) error {
	products := []models.Product{}

	err := s.env.DB.Preload("Tax").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return lookupFailed(c, "getProducts", err)
	}

	return response.Data(c, products)
}

// Countries answers the active countries.
func (s *Service) Countries(c *fiber.Ctx) error {
	countries, err := dbresource.Active[models.Country](s.env.DB, statusColumn)
	if err != nil {
		return lookupFailed(c, "getCountries", err)
	}

	return response.Data(c, countries)
}

// OrderStatuses answers the active order statuses.
func (s *Service) OrderStatuses(c *fiber.Ctx) error {
	statuses, err := dbresource.Active[models.OrderStatus](s.env.DB, statusColumn)
	if err != nil {
		return lookupFailed(c, "getOrderStatues", err)
	}

	return response.Data(c, statuses)
}

type couponRequest struct {
	Coupon string `json:"coupon"`
}

// ApplyCoupon answers the active coupon with the requested code.
func (s *Service) ApplyCoupon(c *fiber.Ctx) error {
	var req couponRequest
	if err := c.BodyParser(&req); err != nil || req.Coupon == "" {
		return response.InvalidParams(c)
	}

	coupons := []models.Coupon{}

	err := s.env.DB.Where("code = ? AND status = ?", req.Coupon, true).Find(&coupons).Error
	if err != nil {
		return lookupFailed(c, "applyCoupon", err)
	}

	if len(coupons) == 0 {
		log.Debug().Str("code", req.Coupon).Msg("Coupon rejected")

		return c.JSON(response.Envelope{Status: false, Msg: invalidCoupon, Data: coupons})
	}

	return response.Data(c, coupons)
}

func lookupFailed(c *fiber.Ctx, route string, err error) error {
	log.Error().Err(err).Str("route", route).Msg("Lookup failed")

	return response.ServerError(c, err)
}

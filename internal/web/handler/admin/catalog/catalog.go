// Package catalog serves the taxonomy and commerce lookups of the admin api:
// categories, sizes, colors, countries, currencies, coupons, order statuses and taxes.
package catalog

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/auth"
	dbresource "github.com/ajadmin/ajadmin/internal/db/controller/resource"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/resource"
)

const errCodeExists resource.Rejection = "Code already exists"

var byName = dbresource.Table{Search: []string{"name"}}

// Service registers the catalog routes.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the resources, the lookups and the coupon check.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	for _, r := range Resources() {
		if err := r.Init(router, env); err != nil {
			return err
		}
	}

	router.Post("/applyCoupon", s.ApplyCoupon)
	router.Get("/cscp", s.ProductOptions)
	router.Get("/cco", s.OrderOptions)
	router.Get("/getProducts", s.Products)
	router.Get("/getCountries", s.Countries)
	router.Get("/getOrderStatues", s.OrderStatuses)

	return nil
}

// Resources returns the list and CRUD routes of the catalog entities.
func Resources() []handler.Service {
	return []handler.Service{
		&resource.Resource[models.Category, *models.Category]{Stem: "category", Module: auth.ModuleCategory, Table: byName},
		&resource.Resource[models.Size, *models.Size]{Stem: "size", Module: auth.ModuleSize, Table: byName},
		&resource.Resource[models.Color, *models.Color]{Stem: "color", Module: auth.ModuleColors, Table: byName},
		&resource.Resource[models.Country, *models.Country]{Stem: "country", Module: auth.ModuleCountry, Table: byName},
		&resource.Resource[models.Currency, *models.Currency]{
			Stem:   "currency",
			Module: auth.ModuleCurrency,
			Table:  dbresource.Table{Search: []string{"title"}},
		},
		&resource.Resource[models.Coupon, *models.Coupon]{
			Stem:         "coupon",
			Module:       auth.ModuleCoupon,
			Table:        byName,
			BeforeCreate: couponCodeFree,
		},
		&resource.Resource[models.OrderStatus, *models.OrderStatus]{
			Stem:   "orderstatuses",
			Module: auth.ModuleOrderStatus,
			Table:  byName,
		},
		&resource.Resource[models.Tax, *models.Tax]{Stem: "tax", Module: auth.ModuleTax, Table: byName},
	}
}

// couponCodeFree rejects a coupon whose code is taken.
func couponCodeFree(_ *fiber.Ctx, env *handler.Env, rec *models.Coupon) error {
	var taken int64
	if err := env.DB.Model(&models.Coupon{}).Where("code = ?", rec.Code).Count(&taken).Error; err != nil {
		return fmt.Errorf("failed to look up coupon code: %w", err)
	}

	if taken > 0 {
		return errCodeExists
	}

	return nil
}

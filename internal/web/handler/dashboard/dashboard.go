// Package dashboard provides the dashboard handler of the admin api.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/auth"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

const (
	// LatestProducts is the number of newest active products shown.
	LatestProducts = 8

	// LatestCustomers is the number of newest active customers shown.
	LatestCustomers = 10
)

// MonthCount is the number of records created in a month, "01" to "12".
type MonthCount struct {
	Month string `json:"_id"`
	Count int    `json:"count"`
}

// Data is the data block of the dashboard.
type Data struct {
	Products        []models.Product  `json:"productData"`
	Customers       []models.Customer `json:"customerData"`
	BlogsMonthly    []MonthCount      `json:"blogsMonthly"`
	CustomerMonthly []MonthCount      `json:"customerMonthly"`
}

// Counts holds the record totals of the dashboard.
type Counts struct {
	Products  int64 `json:"totalProduct"`
	Customers int64 `json:"totalCustomer"`
	Blogs     int64 `json:"totalBlog"`
	Users     int64 `json:"totalUser"`
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	router.Get("/getDashboard", auth.RequirePermission(env.Auth, auth.ActionRead, auth.ModuleDashboard), s.Get)

	return nil
}

// Get answers the totals, the newest records and the monthly sign-up counts.
func (s *Service) Get(c *fiber.Ctx) error {
	counts, err := count(s.env.DB)
	if err != nil {
		log.Error().Err(err).Msg("Failed to count dashboard records")

		return response.ServerError(c, err)
	}

	data, err := load(s.env.DB)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load dashboard data")

		return response.ServerError(c, err)
	}

	log.Debug().
		Int64("products", counts.Products).
		Int64("customers", counts.Customers).
		Int64("blogs", counts.Blogs).
		Int64("users", counts.Users).
		Msg("Dashboard retrieved")

	return c.JSON(fiber.Map{
		"status":        true,
		"data":          []Data{*data},
		"totalProduct":  counts.Products,
		"totalCustomer": counts.Customers,
		"totalBlog":     counts.Blogs,
		"totalUser":     counts.Users,
	})
}

func count(db *gorm.DB) (*Counts, error) {
	var out Counts

	for _, t := range []struct {
		model any
		dst   *int64
	}{
		{&models.Product{}, &out.Products},
		{&models.Customer{}, &out.Customers},
		{&models.Blog{}, &out.Blogs},
		{&models.User{}, &out.Users},
	} {
		if err := db.Model(t.model).Count(t.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to count records: %w", err)
		}
	}

	return &out, nil
}

func load(db *gorm.DB) (*Data, error) {
	data := Data{
		Products:  []models.Product{},
		Customers: []models.Customer{},
	}

	err := db.Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(LatestProducts).
		Find(&data.Products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load latest products: %w", err)
	}

	err = db.Omit("password", "token").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(LatestCustomers).
		Find(&data.Customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load latest customers: %w", err)
	}

	if data.BlogsMonthly, err = monthly(db, &models.Blog{}); err != nil {
		return nil, err
	}

	if data.CustomerMonthly, err = monthly(db, &models.Customer{}); err != nil {
		return nil, err
	}

	return &data, nil
}

// monthly groups the records of model by the month they were created in.
// Months of different years fall into the same bucket.
func monthly(db *gorm.DB, model any) ([]MonthCount, error) {
	var created []time.Time
	if err := db.Model(model).Pluck("created_at", &created).Error; err != nil {
		return nil, fmt.Errorf("failed to load creation dates: %w", err)
	}

	buckets := make(map[string]int)
	for _, t := range created {
		buckets[fmt.Sprintf("%02d", int(t.Month()))]++
	}

	out := make([]MonthCount, 0, len(buckets))
	for month, n := range buckets {
		out = append(out, MonthCount{Month: month, Count: n})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	return out, nil
}

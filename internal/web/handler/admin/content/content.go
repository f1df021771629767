// Package content serves the storefront content of the admin api:
// faqs, services, blogs with their categories and tags, and the example resource.
package content

import (
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
	columnServiceImage = "service_image"
	columnBlogImage    = "blog_image"
	statusColumn       = "status"
)

var (
	byName  = dbresource.Table{Search: []string{"name"}}
	byTitle = dbresource.Table{Search: []string{"title"}}
)

// Service registers the content routes.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the resources, their image uploads and the blog lookup.
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

	router.Post("/uploadServiceImage",
		resource.SingleImage[models.Service](env, columnServiceImage, storage.DirApplication, false, nil))
	router.Post("/updateServiceImage",
		resource.SingleImage[models.Service](env, columnServiceImage, storage.DirApplication, true, nil))
	router.Post("/uploadBlogImage",
		resource.SingleImage[models.Blog](env, columnBlogImage, storage.DirBlog, false, nil))
	router.Post("/updateBlogImage",
		resource.SingleImage[models.Blog](env, columnBlogImage, storage.DirBlog, true, nil))

	router.Get("/bct", s.BlogOptions)

	return nil
}

// Resources returns the list and CRUD routes of the content entities.
func Resources() []handler.Service {
	return []handler.Service{
		&resource.Resource[models.Faq, *models.Faq]{Stem: "faq", Module: auth.ModuleFaq, Table: byTitle},
		&resource.Resource[models.Service, *models.Service]{
			Stem:    "service",
			Module:  auth.ModuleService,
			Table:   byTitle,
			Keep:    []string{columnServiceImage},
			IDField: "service_id",
			Images: func(rec *models.Service) (string, []string) {
				return storage.DirApplication, []string{rec.ServiceImage}
			},
		},
		&resource.Resource[models.Blog, *models.Blog]{
			Stem:         "blog",
			Module:       auth.ModuleBlog,
			Table:        dbresource.Table{Search: []string{"title"}, Preload: []string{"BlogCategory"}},
			CreateFields: []string{"Title", "Content", "BlogCategoryID", "PublishDate"},
			UpdateFields: []string{"Title", "SubTitle", "Content", "ButtonText", "BlogCategoryID", "PublishDate"},
			Keep:         []string{columnBlogImage},
			IDField:      "blog_id",
			BeforeCreate: func(_ *fiber.Ctx, _ *handler.Env, rec *models.Blog) error {
				rec.Slug = blogSlug(rec)

				return nil
			},
			BeforeUpdate: func(_ *fiber.Ctx, _ *handler.Env, _ uint64, rec *models.Blog) error {
				rec.Slug = blogSlug(rec)

				return nil
			},
			Images: func(rec *models.Blog) (string, []string) {
				return storage.DirBlog, []string{rec.BlogImage}
			},
		},
		&resource.Resource[models.BlogCategory, *models.BlogCategory]{
			Stem:   "blogCategory",
			Module: auth.ModuleBlogCategory,
			Table:  byName,
			BeforeCreate: func(_ *fiber.Ctx, _ *handler.Env, rec *models.BlogCategory) error {
				rec.Slug = slugOr(rec.Slug, rec.Name)

				return nil
			},
			BeforeUpdate: func(_ *fiber.Ctx, _ *handler.Env, _ uint64, rec *models.BlogCategory) error {
				rec.Slug = slugOr(rec.Slug, rec.Name)

				return nil
			},
		},
		&resource.Resource[models.Tag, *models.Tag]{Stem: "tag", Module: auth.ModuleTag, Table: byName},
		&resource.Resource[models.Example, *models.Example]{Stem: "example", Module: auth.ModuleExample, Table: byName},
	}
}

func blogSlug(rec *models.Blog) string {
	return slugOr(rec.Slug, rec.Title)
}

// slugOr keeps an explicit slug and derives one from fallback otherwise.
func slugOr(explicit, fallback string) string {
	if explicit != "" {
		return slug.Make(explicit)
	}

	return slug.Make(fallback)
}

// BlogOptions answers the active blog categories and tags of the blog form.
func (s *Service) BlogOptions(c *fiber.Ctx) error {
	categories, err := dbresource.Active[models.BlogCategory](s.env.DB, statusColumn)
	if err != nil {
		log.Error().Err(err).Str("route", "bct").Msg("Lookup failed")

		return response.ServerError(c, err)
	}

	tags, err := dbresource.Active[models.Tag](s.env.DB, statusColumn)
	if err != nil {
		log.Error().Err(err).Str("route", "bct").Msg("Lookup failed")

		return response.ServerError(c, err)
	}

	return response.Data(c, []fiber.Map{{
		"BlogCategoryData": categories,
		"TagData":          tags,
	}})
}

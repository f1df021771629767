// Package resource serves the list, add, edit and delete routes every admin resource shares.
//
// A Resource is described once per entity: its route stem, the permission
// module guarding it, how it is listed and which hooks run around the writes.
package resource

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/auth"
	dbresource "github.com/ajadmin/ajadmin/internal/db/controller/resource"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/storage"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

// Rejection is returned by hooks to refuse a write. The client sees the text as msg.
type Rejection string

func (r Rejection) Error() string {
	return string(r)
}

// Record is the pointer type of a model embedding models.Model.
type Record[T any] interface {
	*T
	Base() *models.Model
}

// Resource serves one admin entity.
type Resource[T any, P Record[T]] struct {
	// Stem prefixes the route names, e.g. "tag" serves /tagList and /tagAdd.
	Stem string
	// Module is the permission module guarding every route.
	Module string
	Table  dbresource.Table

	// CreateFields and UpdateFields name the fields validated on add and edit.
	// Empty validates the whole struct.
	CreateFields []string
	UpdateFields []string
	// Keep lists the columns an edit leaves alone, e.g. stored images.
	Keep []string
	// IDField is the response key carrying the id of an added record.
	IDField string

	// Insert replaces the plain insert of a new record.
	Insert func(env *handler.Env, rec P) error

	BeforeCreate func(c *fiber.Ctx, env *handler.Env, rec P) error
	AfterCreate  func(c *fiber.Ctx, env *handler.Env, rec P) error
	BeforeUpdate func(c *fiber.Ctx, env *handler.Env, id uint64, rec P) error
	AfterUpdate  func(c *fiber.Ctx, env *handler.Env, id uint64, rec P) error
	AfterDelete  func(c *fiber.Ctx, env *handler.Env, rec P)
	// Updated answers a finished edit in place of the default message.
	Updated func(c *fiber.Ctx, env *handler.Env, id uint64, rec P) error
	// Images returns the stored images of a record, removed after delete.
	Images func(rec P) (dir string, names []string)

	env *handler.Env
}

// Init registers the four routes of the resource on router.
func (r *Resource[T, P]) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	r.env = env

	router.Get("/"+r.Stem+"List", auth.RequirePermission(env.Auth, auth.ActionRead, r.Module), r.List)
	router.Post("/"+r.Stem+"Add", auth.RequirePermission(env.Auth, auth.ActionCreate, r.Module), r.Add)
	router.Put("/"+r.Stem+"Edit/:id", auth.RequirePermission(env.Auth, auth.ActionUpdate, r.Module), r.Edit)
	router.Delete("/"+r.Stem+"Delete/:id", auth.RequirePermission(env.Auth, auth.ActionDelete, r.Module), r.Delete)

	return nil
}

// ParseQuery reads the list parameters of the request.
func ParseQuery(c *fiber.Ctx) dbresource.Query {
	return dbresource.Query{
		Page:    c.QueryInt("currentPage", 1),
		Limit:   c.QueryInt("limit", dbresource.DefaultLimit),
		Sort:    c.Query("sort"),
		Order:   c.Query("order"),
		Keyword: c.Query("keyword"),
	}
}

// List answers one page of records.
func (r *Resource[T, P]) List(c *fiber.Ctx) error {
	page, err := dbresource.List[T](r.env.DB, r.Table, ParseQuery(c))
	if err != nil {
		log.Error().Err(err).Str("resource", r.Stem).Msg("Failed to list records")

		return response.ServerError(c, err)
	}

	return response.List(c, page)
}

// Add creates a record from the request body.
func (r *Resource[T, P]) Add(c *fiber.Ctx) error {
	rec := P(new(T))

	if err := c.BodyParser(rec); err != nil {
		log.Debug().Err(err).Str("resource", r.Stem).Msg("Unreadable body")

		return response.InvalidParams(c)
	}

	if err := Validate(r.env, rec, r.CreateFields); err != nil {
		log.Debug().Err(err).Str("resource", r.Stem).Msg("Validation failed")

		return response.InvalidParams(c)
	}

	base := rec.Base()
	*base = models.Model{}

	if r.BeforeCreate != nil {
		if err := r.BeforeCreate(c, r.env, rec); err != nil {
			return hookFailed(c, r.Stem, err, "")
		}
	}

	if err := r.insert(rec); err != nil {
		return hookFailed(c, r.Stem, err, "")
	}

	if r.AfterCreate != nil {
		if err := r.AfterCreate(c, r.env, rec); err != nil {
			return hookFailed(c, r.Stem, err, "")
		}
	}

	log.Info().Str("resource", r.Stem).Uint64("id", base.ID).Msg("Record created")

	if r.IDField != "" {
		return response.With(c, response.MsgAdded, fiber.Map{r.IDField: base.ID})
	}

	return response.OK(c, response.MsgAdded)
}

func (r *Resource[T, P]) insert(rec P) error {
	if r.Insert != nil {
		return r.Insert(r.env, rec)
	}

	return dbresource.Create[T](r.env.DB, rec) //nolint:wrapcheck
}

// Edit replaces the editable columns of the record named by the path id.
// A missing record is not an error.
func (r *Resource[T, P]) Edit(c *fiber.Ctx) error {
	id, err := PathID(c)
	if err != nil {
		return response.Fail(c, response.MsgUpdateFailed)
	}

	rec := P(new(T))

	if err = c.BodyParser(rec); err != nil {
		log.Debug().Err(err).Str("resource", r.Stem).Msg("Unreadable body")

		return response.InvalidParams(c)
	}

	if err = Validate(r.env, rec, r.UpdateFields); err != nil {
		log.Debug().Err(err).Str("resource", r.Stem).Msg("Validation failed")

		return response.InvalidParams(c)
	}

	if r.BeforeUpdate != nil {
		if err = r.BeforeUpdate(c, r.env, id, rec); err != nil {
			return hookFailed(c, r.Stem, err, response.MsgUpdateFailed)
		}
	}

	rows, err := dbresource.Replace[T](r.env.DB, id, rec, r.Keep...)
	if err != nil {
		log.Error().Err(err).Str("resource", r.Stem).Uint64("id", id).Msg("Failed to update record")

		return response.Fail(c, response.MsgUpdateFailed)
	}

	if r.AfterUpdate != nil {
		if err = r.AfterUpdate(c, r.env, id, rec); err != nil {
			return hookFailed(c, r.Stem, err, response.MsgUpdateFailed)
		}
	}

	log.Info().Str("resource", r.Stem).Uint64("id", id).Int64("rows", rows).Msg("Record updated")

	if r.Updated != nil {
		return r.Updated(c, r.env, id, rec)
	}

	return response.OK(c, response.MsgUpdated)
}

// Delete removes the record named by the path id together with its images.
func (r *Resource[T, P]) Delete(c *fiber.Ctx) error {
	id, err := PathID(c)
	if err != nil {
		return response.Fail(c, response.MsgDeleteFailed)
	}

	rec, err := dbresource.Get[T](r.env.DB, id)
	if err != nil && !errors.Is(err, dbresource.ErrNotFound) {
		log.Error().Err(err).Str("resource", r.Stem).Uint64("id", id).Msg("Failed to load record")

		return response.Fail(c, response.MsgDeleteFailed)
	}

	if _, err = dbresource.Delete[T](r.env.DB, id); err != nil {
		log.Error().Err(err).Str("resource", r.Stem).Uint64("id", id).Msg("Failed to delete record")

		return response.Fail(c, response.MsgDeleteFailed)
	}

	if rec != nil {
		if r.Images != nil {
			dir, names := r.Images(rec)
			storage.Unlink(c.UserContext(), r.env.Images, dir, names...)
		}

		if r.AfterDelete != nil {
			r.AfterDelete(c, r.env, rec)
		}
	}

	log.Info().Str("resource", r.Stem).Uint64("id", id).Msg("Record deleted")

	return response.OK(c, response.MsgDeleted)
}

// PathID parses the :id route parameter.
func PathID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64) //nolint:wrapcheck
}

// Validate checks the required fields of rec. Without fields the whole struct is checked.
func Validate(env *handler.Env, rec any, fields []string) error {
	if len(fields) == 0 {
		return env.Validator.Struct(rec) //nolint:wrapcheck
	}

	return env.Validator.StructPartial(rec, fields...) //nolint:wrapcheck
}

func hookFailed(c *fiber.Ctx, stem string, err error, failMsg string) error {
	var rejection Rejection
	if errors.As(err, &rejection) {
		log.Debug().Str("resource", stem).Str("reason", string(rejection)).Msg("Write rejected")

		return response.Fail(c, string(rejection))
	}

	log.Error().Err(err).Str("resource", stem).Msg("Failed to write record")

	if failMsg != "" {
		return response.Fail(c, failMsg)
	}

	return response.ServerError(c, err)
}

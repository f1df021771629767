package resource

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/storage"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

// QueryID parses the ?id= parameter used by the image routes.
func QueryID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Query("id"), 10, 64) //nolint:wrapcheck
}

// SaveUpload stores an uploaded file in dir and returns the stored name.
func SaveUpload(c *fiber.Ctx, store storage.Store, dir string, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}

	defer func() { _ = file.Close() }()

	name := storage.FileName(fh.Filename)

	if err = store.Save(c.UserContext(), dir, name, file); err != nil {
		return "", err //nolint:wrapcheck
	}

	return name, nil
}

// ImageResponder answers a finished image update.
type ImageResponder func(c *fiber.Ctx, id uint64, name string) error

// SingleImage serves an upload route that stores the multipart "image" part in dir
// and writes its name to column of the T with ?id=. With replace the previous image,
// named by the "oldImage" form value, is removed afterwards.
func SingleImage[T any](env *handler.Env, column, dir string, replace bool, respond ImageResponder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := QueryID(c)
		if err != nil {
			return response.Fail(c, response.MsgUpdateFailed)
		}

		fh, err := c.FormFile("image")
		if err != nil {
			log.Debug().Err(err).Str("column", column).Msg("Upload without image part")

			return response.Fail(c, response.MsgUpdateFailed)
		}

		name, err := SaveUpload(c, env.Images, dir, fh)
		if err != nil {
			log.Error().Err(err).Str("dir", dir).Msg("Failed to store image")

			return response.Fail(c, response.MsgUpdateFailed)
		}

		if err = env.DB.Model(new(T)).Where("id = ?", id).Update(column, name).Error; err != nil {
			log.Error().Err(err).Uint64("id", id).Str("column", column).Msg("Failed to set image")
			storage.Unlink(c.UserContext(), env.Images, dir, name)

			return response.Fail(c, response.MsgUpdateFailed)
		}

		if replace {
			storage.Unlink(c.UserContext(), env.Images, dir, c.FormValue("oldImage"))
		}

		if respond != nil {
			return respond(c, id, name)
		}

		if replace {
			return response.OK(c, response.MsgUpdated)
		}

		return response.OK(c, response.MsgImageAdded)
	}
}

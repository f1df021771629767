// Package response writes the JSON envelope every api endpoint answers with.
//
// Handler outcomes are reported in the envelope's status field with HTTP 200.
// Only the identity and permission middlewares answer with HTTP 401.
package response

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ajadmin/ajadmin/internal/db/controller/resource"
)

// Messages shared by the admin handlers.
const (
	MsgAdded         = "Data Added Successfully!"
	MsgImageAdded    = "Data Added Successfully"
	MsgUpdated       = "Data Updated Successfully"
	MsgDeleted       = "Data Deleted Successfully"
	MsgUpdateFailed  = "Failed To Update"
	MsgDeleteFailed  = "Failed To Delete"
	MsgStockFailed   = "Failed To Update stock "
	MsgInvalidParams = "Invalid parameters in request"
	MsgServerError   = "Server error: "
)

// Envelope is the response body of every endpoint.
type Envelope struct {
	Status bool   `json:"status"`
	Msg    string `json:"msg,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ListEnvelope is the response body of list endpoints.
type ListEnvelope struct {
	Status     bool  `json:"status"`
	Data       any   `json:"data"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// OK answers status true with msg.
func OK(c *fiber.Ctx, msg string) error {
	return c.JSON(Envelope{Status: true, Msg: msg})
}

// Data answers status true with data.
func Data(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Status: true, Data: data})
}

// Fail answers status false with msg.
func Fail(c *fiber.Ctx, msg string) error {
	return c.JSON(Envelope{Status: false, Msg: msg})
}

// InvalidParams answers a failed required field check.
func InvalidParams(c *fiber.Ctx) error {
	return Fail(c, MsgInvalidParams)
}

// ServerError answers a storage failure with its detail.
func ServerError(c *fiber.Ctx, err error) error {
	return Fail(c, MsgServerError+err.Error())
}

// Unauthorized answers HTTP 401 with status false and msg.
func Unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(Envelope{Status: false, Msg: msg})
}

// List answers one page of a list.
func List[T any](c *fiber.Ctx, p *resource.Page[T]) error {
	return c.JSON(ListEnvelope{
		Status:     true,
		Data:       p.Items,
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	})
}

// With answers status true with msg plus extra top level keys.
func With(c *fiber.Ctx, msg string, extra fiber.Map) error {
	body := fiber.Map{"status": true, "msg": msg}
	for k, v := range extra {
		body[k] = v
	}

	return c.JSON(body)
}

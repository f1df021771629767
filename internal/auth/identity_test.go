package auth

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireIdentity(t *testing.T) {
	tokens := newTestTokens(t)

	app := fiber.New()
	app.Get("/me", RequireIdentity(tokens), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}

		return c.SendString(strconv.FormatUint(id, 10) + ":" + string(IdentityKind(c)) + ":" + strconv.FormatBool(Token(c) != ""))
	})

	valid, err := tokens.Sign(9, "c@mail.com", KindCustomer)
	require.NoError(t, err)

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "no header", header: "", wantStatus: fiber.StatusUnauthorized},
		{name: "basic scheme", header: "Basic YWxhZGRpbjpvcGVuc2VzYW1l", wantStatus: fiber.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantStatus: fiber.StatusUnauthorized},
		{name: "malformed", header: "Bearer abc.def.ghi", wantStatus: fiber.StatusUnauthorized},
		{name: "valid", header: "Bearer " + valid, wantStatus: fiber.StatusOK, wantBody: "9:customer:true"},
		{name: "lower case scheme", header: "bearer " + valid, wantStatus: fiber.StatusOK, wantBody: "9:customer:true"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)

			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			if tc.wantStatus == fiber.StatusOK {
				assert.Equal(t, tc.wantBody, string(body))

				return
			}

			var env struct {
				Status bool   `json:"status"`
				Msg    string `json:"msg"`
			}

			require.NoError(t, json.Unmarshal(body, &env))
			assert.False(t, env.Status)
			assert.NotEmpty(t, env.Msg)
		})
	}
}

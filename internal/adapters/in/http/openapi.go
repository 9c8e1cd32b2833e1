package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yml
var openapiYAML []byte

// APIDoc is the parsed OpenAPI document served at /openapi.json and used to validate
// requests.
type APIDoc struct {
	doc    *openapi3.T
	router routers.Router
	json   []byte
}

// LoadAPIDoc parses and validates the embedded document.
func LoadAPIDoc() (*APIDoc, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}

	return &APIDoc{doc: doc, router: router, json: raw}, nil
}

// ReadDoc implements swag.Swagger so echo-swagger can serve the document.
func (d *APIDoc) ReadDoc() string {
	return string(d.json)
}

var registerSwagger sync.Once

func (d *APIDoc) registerSwagger() {
	registerSwagger.Do(func() {
		swag.Register(swag.Name, d)
	})
}

func (d *APIDoc) serveJSON(c echo.Context) error {
	return c.JSONBlob(http.StatusOK, d.json)
}

// validateRequests rejects requests that do not match the document. Paths the document
// does not describe (health, swagger) pass through untouched.
func (d *APIDoc) validateRequests() echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := d.router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				var secErr *openapi3filter.SecurityRequirementsError
				if errors.As(err, &secErr) {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
			}
			return next(c)
		}
	}
}

func validationMessage(err error) string {
	switch e := err.(type) {
	case *openapi3filter.RequestError:
		if e.Parameter != nil {
			return fmt.Sprintf("parameter %q: %s", e.Parameter.Name, e.Reason)
		}
		if e.Err != nil {
			return "request body: " + e.Err.Error()
		}
		return e.Reason
	default:
		return err.Error()
	}
}

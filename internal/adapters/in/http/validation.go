package http

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

// ValidateRequests checks parameters and bodies against the operation doc
// declares for the matched route and answers 400 on a mismatch. Routes doc
// does not describe pass through. Authentication stays with Authenticate.
func ValidateRequests(doc *openapi3.T) echo.MiddlewareFunc {
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := findRoute(doc, c)
			if route == nil {
				return next(c)
			}

			names, values := c.ParamNames(), c.ParamValues()
			pathParams := make(map[string]string, len(names))
			for i, name := range names {
				pathParams[name] = values[i]
			}

			err := openapi3filter.ValidateRequest(c.Request().Context(), &openapi3filter.RequestValidationInput{
				Request:    c.Request(),
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return badRequest(c, err.Error())
			}
			return next(c)
		}
	}
}

func findRoute(doc *openapi3.T, c echo.Context) *routers.Route {
	path := openAPIPath(c.Path())
	item := doc.Paths.Value(path)
	if item == nil {
		return nil
	}
	method := c.Request().Method
	operation := item.GetOperation(method)
	if operation == nil {
		return nil
	}
	return &routers.Route{
		Spec:      doc,
		Path:      path,
		PathItem:  item,
		Method:    method,
		Operation: operation,
	}
}

// openAPIPath turns an echo route ("/orders/:id") into its template form
// ("/orders/{id}").
func openAPIPath(echoPath string) string {
	segments := strings.Split(echoPath, "/")
	for i, segment := range segments {
		if name, ok := strings.CutPrefix(segment, ":"); ok {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}

package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/folio/internal/domain"
)

// bindQuery binds an optional form-style query parameter into dest.
// A missing parameter leaves dest untouched.
func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return domain.NewValidationError(name, fmt.Sprintf("Invalid format for parameter %s", name))
	}
	return nil
}

// bindPath binds a required simple-style path parameter into dest.
func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return domain.NewValidationError(name, fmt.Sprintf("Invalid format for parameter %s", name))
	}
	return nil
}

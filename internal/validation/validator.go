package validation

import (
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a validator with the storefront's struct-level rules registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// report json names in error namespaces so clients see the fields they sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(sendEmailStructValidation, SendEmailRequest{})

	return v
}

// sendEmailStructValidation requires the company identity when a factura is requested.
func sendEmailStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(SendEmailRequest)

	if !strings.EqualFold(strings.TrimSpace(req.TipoDocumento), "factura") {
		return
	}
	if strings.TrimSpace(req.RUTEmpresa) == "" {
		sl.ReportError(req.RUTEmpresa, "rutEmpresa", "RUTEmpresa", "required_for_factura", "")
	}
	if strings.TrimSpace(req.RazonSocial) == "" {
		sl.ReportError(req.RazonSocial, "razonSocial", "RazonSocial", "required_for_factura", "")
	}
}

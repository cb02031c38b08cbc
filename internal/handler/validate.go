package handler

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"regexp"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// fieldErrors collects per-field validation failures for a 400 response.
type fieldErrors map[string]string

func (fe fieldErrors) ok() bool { return len(fe) == 0 }

// bindStrict decodes a JSON body rejecting unknown fields, so extra body
// fields fail validation instead of being silently dropped.
func bindStrict(c echo.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// validationFailed writes the standard 400 body with field-level detail.
func validationFailed(c echo.Context, fields fieldErrors) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":  "validation failed",
		"fields": fields,
	})
}

func checkUUID(fe fieldErrors, field, value string) {
	if _, err := uuid.Parse(value); err != nil {
		fe[field] = "must be a valid UUID"
	}
}

func checkName(fe fieldErrors, name string) {
	switch {
	case name == "":
		fe["name"] = "is required"
	case len(name) > 120:
		fe["name"] = "must be at most 120 characters"
	}
}

func checkSlug(fe fieldErrors, slug string) {
	switch {
	case slug == "":
		fe["slug"] = "is required"
	case len(slug) > 120:
		fe["slug"] = "must be at most 120 characters"
	case !slugPattern.MatchString(slug):
		fe["slug"] = "must be kebab-case (lowercase, digits and dashes)"
	}
}

func checkCompanyNumber(fe fieldErrors, companyNumber string) {
	switch {
	case companyNumber == "":
		fe["companyNumber"] = "is required"
	case len(companyNumber) > 40:
		fe["companyNumber"] = "must be at most 40 characters"
	}
}

func checkEmail(fe fieldErrors, email string) {
	if email == "" {
		fe["email"] = "is required"
		return
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		fe["email"] = "must be a valid email address"
	}
}

func checkPassword(fe fieldErrors, password string) {
	switch {
	case password == "":
		fe["password"] = "is required"
	case len(password) < 8:
		fe["password"] = "must be at least 8 characters"
	case len(password) > 128:
		fe["password"] = "must be at most 128 characters"
	}
}

package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/orderhub/catalog-service/internal/entity"
)

// maxImageSize bounds uploaded entity images.
const maxImageSize = 500 * 1024

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the wire-level field name, not the Go one.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// checkForm validates a decoded form and converts the first violation into
// the caller-facing message.
func checkForm(form any) *entity.ValidationError {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return entity.Validationf(violationMessage(verrs[0]))
	}
	return entity.Validationf(err.Error())
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// imageFile reads the uploaded image from the multipart form. When required
// is false an absent file yields (nil, nil) and the existing image is kept.
func imageFile(c *gin.Context, required bool) ([]byte, *entity.ValidationError) {
	header, err := c.FormFile("image")
	if errors.Is(err, multipart.ErrMessageTooLarge) {
		return nil, entity.Validationf("image exceeds the allowed file size")
	}
	if err != nil {
		if required {
			return nil, entity.Validationf("image is required")
		}
		return nil, nil
	}
	if header.Size > maxImageSize {
		return nil, entity.Validationf("image exceeds the allowed file size")
	}

	file, err := header.Open()
	if err != nil {
		return nil, entity.Validationf("image could not be read")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, entity.Validationf("image could not be read")
	}
	return data, nil
}

package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
	taxonerrors "github.com/alexisbeaulieu97/taxon/pkg/errors"
)

// MaxDepth bounds how deeply categories may nest.
const MaxDepth = 32

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"yaml", "mapstructure"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return strings.ToLower(field.Name)
		})

		validateInst = v
	})

	return validateInst
}

// ValidateDocument performs schema validation on the header and walks the
// category tree checking each entry, sibling uniqueness and nesting depth.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return taxonerrors.NewValidationError("document", "document is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(doc); err != nil {
		return convertValidationError("", err)
	}

	return validateCategories(v, "categories", doc.Categories, 1)
}

func validateCategories(v *validator.Validate, parent string, cats Categories, depth int) error {
	if len(cats) > 0 && depth > MaxDepth {
		return taxonerrors.NewValidationError(parent, fmt.Sprintf("nesting exceeds %d levels", MaxDepth), nil)
	}

	seen := make(map[string]int, len(cats))
	for _, cat := range cats {
		field := parent + "." + cat.Name
		if strings.TrimSpace(cat.Name) == "" {
			return taxonerrors.NewValidationError(parent, fmt.Sprintf("line %d: category name is empty", cat.Line), nil)
		}
		if taxonomy.ReservedInName(cat.Name) {
			return taxonerrors.NewValidationError(parent, fmt.Sprintf("line %d: category name %q contains a control character", cat.Line, cat.Name), nil)
		}
		if line, dup := seen[cat.Name]; dup {
			return taxonerrors.NewValidationError(field, fmt.Sprintf("line %d: duplicate category, first defined on line %d", cat.Line, line), nil)
		}
		seen[cat.Name] = cat.Line

		if err := v.Struct(cat); err != nil {
			return convertValidationError(field, err)
		}
		if err := validateCategories(v, field, cat.Children, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func convertValidationError(prefix string, err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := ve.Field()
		if parts := strings.SplitN(ve.Namespace(), ".", 2); len(parts) == 2 {
			field = parts[1]
		}
		if prefix != "" {
			field = prefix + "." + field
		}
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, ve.Tag(), ve.Param())
		}
		return taxonerrors.NewValidationError(field, msg, err)
	}

	return taxonerrors.NewValidationError(prefix, err.Error(), err)
}

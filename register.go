// FILE: lixenwraith/konf/register.go
package konf

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// TagName is the struct tag read by RegisterStruct and Scan.
const TagName = "konf"

var (
	durationType = reflect.TypeOf(time.Duration(0))
	symbolType   = reflect.TypeOf(Symbol(""))
)

// RegisterStruct declares one variable per exported field of structWithDefaults,
// using field values as defaults. Nested structs contribute dot-separated names.
//
// Tags:
//
//	konf:"name,required"  variable name (field name lower-cased when empty), "-" skips
//	desc:"..."            description
//	sep:";"               list separator
//	validate:"gt=0"       go-playground/validator rule
//
// The prefix is prepended to all names (e.g., "log."). An empty prefix is allowed.
func (r *Registry) RegisterStruct(prefix string, structWithDefaults any) error {
	v := reflect.ValueOf(structWithDefaults)

	// Handle pointer or direct struct value
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("%w: RegisterStruct requires a non-nil struct pointer or value", ErrInvalidDeclaration)
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: RegisterStruct requires a struct or struct pointer, got %T", ErrInvalidDeclaration, structWithDefaults)
	}

	var errs []string
	r.registerFields(v, prefix, &errs)

	if len(errs) > 0 {
		return fmt.Errorf("%w: failed to register %d field(s): %s", ErrInvalidDeclaration, len(errs), strings.Join(errs, "; "))
	}
	return nil
}

func (r *Registry) registerFields(v reflect.Value, pathPrefix string, errs *[]string) {
	t := v.Type()
	if pathPrefix != "" && !strings.HasSuffix(pathPrefix, ".") {
		pathPrefix += "."
	}

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(TagName)
		if tag == "-" {
			continue
		}

		key := strings.ToLower(field.Name)
		required := false
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				key = parts[0]
			}
			for _, opt := range parts[1:] {
				if strings.TrimSpace(opt) == "required" {
					required = true
				}
			}
		}
		currentPath := pathPrefix + key

		// Recurse into nested structs; nil struct pointers are skipped
		isStruct := fieldValue.Kind() == reflect.Struct
		isPtrToStruct := fieldValue.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct
		if isStruct || isPtrToStruct {
			nested := fieldValue
			if isPtrToStruct {
				if fieldValue.IsNil() {
					continue
				}
				nested = fieldValue.Elem()
			}
			r.registerFields(nested, currentPath, errs)
			continue
		}

		kind, items, err := kindOfType(field.Type)
		if err != nil {
			*errs = append(*errs, fmt.Sprintf("field %s (name %s): %v", field.Name, currentPath, err))
			continue
		}

		opts := []VarOption{Default(fieldValue.Interface())}
		if required {
			opts = append(opts, Required())
		}
		if desc := field.Tag.Get("desc"); desc != "" {
			opts = append(opts, Describe(desc))
		}
		if kind == KindList {
			opts = append(opts, Items(items))
			if sep := field.Tag.Get("sep"); sep != "" {
				opts = append(opts, Separator(sep))
			}
		}
		if rule := field.Tag.Get("validate"); rule != "" {
			opts = append(opts, ValidateTag(rule))
		}

		if err := r.Register(currentPath, kind, opts...); err != nil {
			*errs = append(*errs, fmt.Sprintf("field %s (name %s): %v", field.Name, currentPath, err))
		}
	}
}

// kindOfType maps a Go field type to a Kind, plus the item kind for slices.
func kindOfType(t reflect.Type) (Kind, Kind, error) {
	switch {
	case t == durationType:
		return KindDuration, 0, nil
	case t == symbolType:
		return KindSymbol, 0, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return KindBoolean, 0, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger, 0, nil
	case reflect.Float32, reflect.Float64:
		return KindFloat, 0, nil
	case reflect.String:
		return KindString, 0, nil
	case reflect.Slice:
		item, _, err := kindOfType(t.Elem())
		if err != nil {
			return 0, 0, err
		}
		if item == KindList {
			return 0, 0, fmt.Errorf("nested slices are not supported")
		}
		return KindList, item, nil
	}
	return 0, 0, fmt.Errorf("unsupported field type %s", t)
}

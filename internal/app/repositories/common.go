package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/helpers"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/validation"
)

var validate = validation.New()

// IDAllocator picks the id of a new record from the ids already stored. It
// runs under the write lock so concurrent creates never pick the same id.
type IDAllocator func(existing []string) string

// SequentialIDs allocates prefix plus one more than the largest numeric
// suffix in use, zero padded to width.
func SequentialIDs(prefix string, width int) IDAllocator {
	return func(existing []string) string {
		return helpers.NextID(existing, prefix, width)
	}
}

// assignID fills an empty id from allocate. A nil allocator leaves it as is.
func assignID[T any](id *string, items []*T, idOf func(*T) string, allocate IDAllocator) {
	if *id != "" || allocate == nil {
		return
	}
	existing := make([]string, 0, len(items))
	for _, item := range items {
		existing = append(existing, idOf(item))
	}
	*id = allocate(existing)
}

// immutableFields are never changed by a merge-patch.
var immutableFields = []string{"id", "role", "created_at"}

// validateRecord runs the struct tag rules and converts failures into a
// validation error listing each offending field.
func validateRecord(kind string, record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("invalid %s: %v", kind, err))
	}
	details := make(map[string]interface{}, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
		fields = append(fields, fe.Field())
	}
	return apperrors.NewCustomError(
		apperrors.ErrValidationFailed,
		fmt.Sprintf("invalid %s: %s", kind, strings.Join(fields, ", ")),
	).WithDetails(details)
}

func notFound(kind, id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", kind, id))
}

func alreadyExists(kind, id string) error {
	return apperrors.NewCustomError(apperrors.ErrAlreadyExists, fmt.Sprintf("%s %s already exists", kind, id))
}

// mergePatch overlays the top-level keys of patch onto record and decodes the
// result into a fresh value. Immutable keys are ignored.
func mergePatch[T any](kind string, record *T, patch models.Patch) (*T, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	for key, value := range patch.Without(immutableFields...) {
		fields[key] = value
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	out := new(T)
	if err := json.Unmarshal(merged, out); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("invalid %s update: %v", kind, err))
	}
	return out, nil
}

func indexOf[T any](items []*T, match func(*T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func remove[T any](items []*T, i int) []*T {
	return append(items[:i], items[i+1:]...)
}

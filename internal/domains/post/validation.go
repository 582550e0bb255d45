package post

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// RawInput là dữ liệu form create/edit post. Field lạ trong body bị bỏ qua.
type RawInput struct {
	Text  string `json:"text"`
	Group string `json:"group"`
}

// ValidInput - input đã qua validate, GroupID nil nghĩa là không có group
type ValidInput struct {
	Text    string
	GroupID *uuid.UUID
}

// GroupChecker is the group lookup the validator needs.
type GroupChecker interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

var errUnknownGroup = validation.NewError("validation_"+KindInvalidReference, "select a valid group")

// ValidateInput trims text, requires it non-blank and checks that a non-empty
// group references an existing group. Lookup failures come back as plain
// errors, not as *ValidationError.
func ValidateInput(ctx context.Context, raw RawInput, groups GroupChecker) (ValidInput, error) {
	in := RawInput{
		Text:  strings.TrimSpace(raw.Text),
		Group: strings.TrimSpace(raw.Group),
	}

	var groupID *uuid.UUID
	err := validation.ValidateStructWithContext(ctx, &in,
		validation.Field(&in.Text,
			validation.Required.Error("text is required"),
		),
		validation.Field(&in.Group,
			validation.WithContext(func(ctx context.Context, value interface{}) error {
				s, _ := value.(string)
				if s == "" {
					return nil
				}
				id, err := uuid.Parse(s)
				if err != nil {
					return errUnknownGroup
				}

				exists, err := groups.ExistsByID(ctx, id)
				if err != nil {
					return validation.NewInternalError(fmt.Errorf("lookup group %s: %w", id, err))
				}
				if !exists {
					return errUnknownGroup
				}
				groupID = &id
				return nil
			}),
		),
	)
	if err != nil {
		return ValidInput{}, toValidationError(err, raw)
	}

	return ValidInput{Text: in.Text, GroupID: groupID}, nil
}

func toValidationError(err error, raw RawInput) error {
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return internal.InternalError()
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for field, ferr := range verrs {
		fe := FieldError{Field: field, Kind: "invalid", Message: ferr.Error()}
		var vErr validation.Error
		if errors.As(ferr, &vErr) {
			fe.Kind = strings.TrimPrefix(vErr.Code(), "validation_")
		}
		fields = append(fields, fe)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })

	return &ValidationError{Fields: fields, Input: raw}
}

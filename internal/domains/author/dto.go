package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SetBirthYearRequest - editAuthor(name, setBornTo)
type SetBirthYearRequest struct {
	Name      string `json:"name"`
	SetBornTo int    `json:"setBornTo"`
}

func (r SetBirthYearRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("author name is required")),
		validation.Field(&r.SetBornTo,
			validation.Min(MinYear).Error("birth year is out of range"),
			validation.Max(MaxYear).Error("birth year is out of range"),
		),
	)
}

// Args echoes the request for ValidationError.InvalidArgs
func (r SetBirthYearRequest) Args() map[string]interface{} {
	return map[string]interface{}{
		"name":      r.Name,
		"setBornTo": r.SetBornTo,
	}
}

package ir

// ValidationKind is the backend's validation type enumeration
type ValidationKind string

const (
	ValidationMinLength   ValidationKind = "MIN_LENGTH"
	ValidationMaxLength   ValidationKind = "MAX_LENGTH"
	ValidationLengthRange ValidationKind = "LENGTH_RANGE"
	ValidationPattern     ValidationKind = "PATTERN"
	ValidationMinValue    ValidationKind = "MIN_VALUE"
	ValidationMaxValue    ValidationKind = "MAX_VALUE"
	ValidationValueRange  ValidationKind = "VALUE_RANGE"
	ValidationMaxFileSize ValidationKind = "MAX_FILE_SIZE"
	ValidationFileType    ValidationKind = "FILE_TYPE"
	ValidationImageWidth  ValidationKind = "IMAGE_WIDTH"
	ValidationImageHeight ValidationKind = "IMAGE_HEIGHT"
	ValidationRequired    ValidationKind = "REQUIRED"
)

// FieldValidationInput is one compiled validation rule
type FieldValidationInput struct {
	Type         ValidationKind        `json:"type" yaml:"type"`
	Config       FieldValidationConfig `json:"config" yaml:"config"`
	ErrorMessage string                `json:"errorMessage" yaml:"errorMessage"`
}

// FieldValidationConfig holds the bounds of a validation. Only the keys
// relevant to the validation type are set.
type FieldValidationConfig struct {
	LengthMin     *int     `json:"lengthMin,omitempty" yaml:"lengthMin,omitempty"`
	LengthMax     *int     `json:"lengthMax,omitempty" yaml:"lengthMax,omitempty"`
	ValueMinInt   *int     `json:"valueMinInt,omitempty" yaml:"valueMinInt,omitempty"`
	ValueMaxInt   *int     `json:"valueMaxInt,omitempty" yaml:"valueMaxInt,omitempty"`
	ValueMinFloat *float64 `json:"valueMinFloat,omitempty" yaml:"valueMinFloat,omitempty"`
	ValueMaxFloat *float64 `json:"valueMaxFloat,omitempty" yaml:"valueMaxFloat,omitempty"`
	DateMin       *string  `json:"dateMin,omitempty" yaml:"dateMin,omitempty"`
	DateMax       *string  `json:"dateMax,omitempty" yaml:"dateMax,omitempty"`
	DateTimeMin   *string  `json:"dateTimeMin,omitempty" yaml:"dateTimeMin,omitempty"`
	DateTimeMax   *string  `json:"dateTimeMax,omitempty" yaml:"dateTimeMax,omitempty"`
	Pattern       *string  `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	ImageWidth    *int     `json:"imageWidth,omitempty" yaml:"imageWidth,omitempty"`
	ImageHeight   *int     `json:"imageHeight,omitempty" yaml:"imageHeight,omitempty"`
	MaxFileSize   *int     `json:"maxFileSize,omitempty" yaml:"maxFileSize,omitempty"`
	FileType      *string  `json:"fileType,omitempty" yaml:"fileType,omitempty"`
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

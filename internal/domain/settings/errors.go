package settings

import "errors"

var (
	ErrConfigurationMissing = errors.New("financial configuration missing")
	ErrConfigurationInvalid = errors.New("financial configuration invalid")
)

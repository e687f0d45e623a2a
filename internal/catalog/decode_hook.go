package catalog

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// StringToRepositoryRefHookFunc converts "organization/repository" strings into RepositoryRef values
// while configuration is decoded.
func StringToRepositoryRefHookFunc() mapstructure.DecodeHookFuncType {
	referenceType := reflect.TypeOf(RepositoryRef{})
	return func(sourceType reflect.Type, targetType reflect.Type, data any) (any, error) {
		if sourceType.Kind() != reflect.String || targetType != referenceType {
			return data, nil
		}
		return ParseRepositoryRef(reflect.ValueOf(data).String())
	}
}

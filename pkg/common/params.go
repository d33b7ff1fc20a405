package common

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Parameter declares a single command parameter: a cobra flag with an
// optional environment variable fallback. Precedence is
// flag > env var > default value.
type Parameter struct {
	Name         string
	ShortName    string
	EnvVarName   string
	TypeKind     reflect.Kind
	DefaultValue interface{}
	Usage        string
	Required     bool
}

// RegisterParameters adds a flag to the command for every parameter in
// the config.
func RegisterParameters(cmd *cobra.Command, config map[string]Parameter) {
	for _, param := range config {
		switch param.TypeKind {
		case reflect.String:
			cmd.Flags().StringP(param.Name, param.ShortName, stringDefault(param), param.Usage)
		case reflect.Int:
			cmd.Flags().IntP(param.Name, param.ShortName, intDefault(param), param.Usage)
		case reflect.Array:
			cmd.Flags().StringArrayP(param.Name, param.ShortName, nil, param.Usage)
		default:
			panic(fmt.Sprintf("unsupported parameter kind %s for '%s'", param.TypeKind, param.Name))
		}
	}
}

// ParseParameters resolves every parameter of the config and stores the
// values into the target struct. Struct fields are matched to
// parameters by the paramName struct tag.
func ParseParameters(cmd *cobra.Command, config map[string]Parameter, target interface{}) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("parameters target must be a pointer to a struct")
	}
	targetStruct := targetValue.Elem()
	targetType := targetStruct.Type()

	for i := 0; i < targetType.NumField(); i++ {
		paramName := targetType.Field(i).Tag.Get("paramName")
		if paramName == "" {
			continue
		}
		param, exists := config[paramName]
		if !exists {
			return fmt.Errorf("parameter '%s' is not declared in the parameters config", paramName)
		}

		field := targetStruct.Field(i)
		switch param.TypeKind {
		case reflect.String:
			value, err := resolveStringParameter(cmd, param)
			if err != nil {
				return err
			}
			field.SetString(value)
		case reflect.Int:
			value, err := resolveIntParameter(cmd, param)
			if err != nil {
				return err
			}
			field.SetInt(int64(value))
		case reflect.Array:
			values, err := resolveArrayParameter(cmd, param)
			if err != nil {
				return err
			}
			field.Set(reflect.ValueOf(values))
		default:
			return fmt.Errorf("unsupported parameter kind %s for '%s'", param.TypeKind, param.Name)
		}
	}

	return nil
}

func resolveStringParameter(cmd *cobra.Command, param Parameter) (string, error) {
	if cmd.Flags().Changed(param.Name) {
		return cmd.Flags().GetString(param.Name)
	}
	if param.EnvVarName != "" {
		if envValue, isSet := os.LookupEnv(param.EnvVarName); isSet {
			return envValue, nil
		}
	}
	value := stringDefault(param)
	if value == "" && param.Required {
		return "", requiredError(param)
	}
	return value, nil
}

func resolveIntParameter(cmd *cobra.Command, param Parameter) (int, error) {
	if cmd.Flags().Changed(param.Name) {
		return cmd.Flags().GetInt(param.Name)
	}
	if param.EnvVarName != "" {
		if envValue, isSet := os.LookupEnv(param.EnvVarName); isSet {
			value, err := strconv.Atoi(envValue)
			if err != nil {
				return 0, fmt.Errorf("env var %s is not a valid integer: '%s'", param.EnvVarName, envValue)
			}
			return value, nil
		}
	}
	if param.DefaultValue == nil && param.Required {
		return 0, requiredError(param)
	}
	return intDefault(param), nil
}

func resolveArrayParameter(cmd *cobra.Command, param Parameter) ([]string, error) {
	if cmd.Flags().Changed(param.Name) {
		return cmd.Flags().GetStringArray(param.Name)
	}
	if param.EnvVarName != "" {
		if envValue, isSet := os.LookupEnv(param.EnvVarName); isSet {
			return splitArrayValue(envValue), nil
		}
	}
	if param.Required {
		return nil, requiredError(param)
	}
	if defaultValue := stringDefault(param); defaultValue != "" {
		return splitArrayValue(defaultValue), nil
	}
	return nil, nil
}

// splitArrayValue splits a single array value given via env var into
// its comma or whitespace separated elements.
func splitArrayValue(value string) []string {
	items := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	return items
}

func requiredError(param Parameter) error {
	if param.EnvVarName != "" {
		return fmt.Errorf("required parameter '%s' is not set (flag --%s or env var %s)", param.Name, param.Name, param.EnvVarName)
	}
	return fmt.Errorf("required parameter '%s' is not set (flag --%s)", param.Name, param.Name)
}

func stringDefault(param Parameter) string {
	if param.DefaultValue == nil {
		return ""
	}
	return fmt.Sprintf("%v", param.DefaultValue)
}

func intDefault(param Parameter) int {
	if param.DefaultValue == nil {
		return 0
	}
	if value, ok := param.DefaultValue.(int); ok {
		return value
	}
	return 0
}

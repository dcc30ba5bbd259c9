package config

import "github.com/conn-castle/gradebook/internal/messages"

// FieldType classifies the kind of value a config field accepts.
type FieldType string

const (
	// FieldEnum accepts one of a fixed set of options.
	FieldEnum FieldType = "enum"
	// FieldFreetext accepts arbitrary string input.
	FieldFreetext FieldType = "freetext"
	// FieldNonNegativeInt accepts zero or a positive integer.
	FieldNonNegativeInt FieldType = "non_negative_int"
	// FieldPositiveInt accepts a positive integer.
	FieldPositiveInt FieldType = "positive_int"
)

// FieldOption describes a single selectable value for a field.
type FieldOption struct {
	Value       string
	Description string
}

// FieldDef describes a single config field's type and valid options.
type FieldDef struct {
	Key     string
	Type    FieldType
	Options []FieldOption
}

// fields is the ordered registry of config fields; order matches the setup prompts.
var fields = []FieldDef{
	{
		Key:  "storage.backend",
		Type: FieldEnum,
		Options: []FieldOption{
			{Value: "file", Description: messages.SetupBackendFileDescription},
			{Value: "sqlite", Description: messages.SetupBackendSQLiteDescription},
			{Value: "memory", Description: messages.SetupBackendMemoryDescription},
		},
	},
	{Key: "storage.dir", Type: FieldFreetext},
	{Key: "roster.default_columns", Type: FieldNonNegativeInt},
	{Key: "export.dir", Type: FieldFreetext},
	{Key: "export.diff_lines", Type: FieldPositiveInt},
	{
		Key:  "log.level",
		Type: FieldEnum,
		Options: []FieldOption{
			{Value: "debug"},
			{Value: "info"},
			{Value: "warn"},
			{Value: "error"},
		},
	},
	{Key: "log.file", Type: FieldFreetext},
}

var fieldIndex map[string]FieldDef

func init() {
	fieldIndex = make(map[string]FieldDef, len(fields))
	for _, f := range fields {
		fieldIndex[f.Key] = f
	}
}

// LookupField returns the field definition for key.
func LookupField(key string) (FieldDef, bool) {
	f, ok := fieldIndex[key]
	return cloneField(f), ok
}

// OptionValues returns the allowed values of an enum field.
func OptionValues(key string) []string {
	f, ok := fieldIndex[key]
	if !ok {
		return nil
	}
	values := make([]string, len(f.Options))
	for i, opt := range f.Options {
		values[i] = opt.Value
	}
	return values
}

func cloneField(f FieldDef) FieldDef {
	if f.Options != nil {
		opts := make([]FieldOption, len(f.Options))
		copy(opts, f.Options)
		f.Options = opts
	}
	return f
}

func isValidOption(key string, value string) bool {
	for _, v := range OptionValues(key) {
		if v == value {
			return true
		}
	}
	return false
}

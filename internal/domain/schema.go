package domain

// Column names as they appear in the distributed manifest template. The
// template localizes headers in Danish; these constants are the canonical
// spellings every parser output is normalized to.
const (
	ColumnAdresse      = "Adresse"
	ColumnPostnummer   = "Postnummer"
	ColumnPostDistrikt = "PostDistrikt"
	ColumnFacilityID   = "ModtageranlægID"
	ColumnNavn         = "Navn"
	ColumnDato         = "Dato"
	ColumnVehicleType  = "KøretøjsType"
	ColumnLoadWeight   = "LastVægt"
	ColumnFuelType     = "Brændstoftype"
)

// Postal codes accepted on manifest rows (Danish four digit range).
const (
	PostalCodeMin = 1000
	PostalCodeMax = 9999
)

// DateLayout is the only calendar date format accepted on manifest rows.
const DateLayout = "2006-01-02"

// FieldType represents the type of a manifest column
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeFloat   FieldType = "float"
	FieldTypeDate    FieldType = "date"
	FieldTypeEnum    FieldType = "enum"
)

// VehicleTypes holds the canonical casing for the KøretøjsType enumeration.
var VehicleTypes = []string{"Personbil", "Lastbil", "Varebil", "Trailer"}

// FuelTypes holds the canonical casing for the Brændstoftype enumeration.
var FuelTypes = []string{"diesel", "benzin", "el", "hybrid"}

// FieldDefinition describes one accepted manifest column.
type FieldDefinition struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	// Enum lists the allowed values in canonical casing when Type is
	// FieldTypeEnum. Input is matched case-insensitively.
	Enum []string `json:"enum,omitempty"`
}

// SchemaDefinition is the immutable contract of accepted manifest columns.
// The spreadsheet template's locked header row is a presentation convention;
// this definition is the authoritative one and is enforced regardless of
// what an uploaded file's cells allowed editing.
type SchemaDefinition struct {
	version string
	fields  []FieldDefinition
}

// NewSchemaDefinition constructs a schema from the provided field
// definitions while preserving declaration order.
func NewSchemaDefinition(version string, fields []FieldDefinition) SchemaDefinition {
	clone := make([]FieldDefinition, len(fields))
	copy(clone, fields)
	return SchemaDefinition{version: version, fields: clone}
}

// DefaultSchema returns the manifest contract at this template version.
func DefaultSchema() SchemaDefinition {
	return NewSchemaDefinition("2024-08", []FieldDefinition{
		{Name: ColumnAdresse, Type: FieldTypeString, Required: true},
		{Name: ColumnPostnummer, Type: FieldTypeInteger, Required: true},
		{Name: ColumnPostDistrikt, Type: FieldTypeString, Required: true},
		{Name: ColumnFacilityID, Type: FieldTypeInteger, Required: true},
		{Name: ColumnNavn, Type: FieldTypeString},
		{Name: ColumnDato, Type: FieldTypeDate},
		{Name: ColumnVehicleType, Type: FieldTypeEnum, Enum: VehicleTypes},
		{Name: ColumnLoadWeight, Type: FieldTypeFloat},
		{Name: ColumnFuelType, Type: FieldTypeEnum, Enum: FuelTypes},
	})
}

// Version returns the schema version identifier.
func (s SchemaDefinition) Version() string {
	return s.version
}

// Fields returns a defensive copy of the field definitions in declaration
// order.
func (s SchemaDefinition) Fields() []FieldDefinition {
	clone := make([]FieldDefinition, len(s.fields))
	copy(clone, s.fields)
	return clone
}

// Field returns the definition for the named column and whether it exists.
func (s SchemaDefinition) Field(name string) (FieldDefinition, bool) {
	for _, field := range s.fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// Has reports whether the named column is part of the contract.
func (s SchemaDefinition) Has(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// MandatoryColumns returns the ordered names of all required columns.
func (s SchemaDefinition) MandatoryColumns() []string {
	var names []string
	for _, field := range s.fields {
		if field.Required {
			names = append(names, field.Name)
		}
	}
	return names
}

package yamlschema

// RequiredMarker is the required column value for required properties.
const RequiredMarker = "Required"

// Row is one line of the documentation table.
type Row struct {
	Path        string
	Type        string
	Format      string
	Required    bool
	Description string
	// Separator marks the blank row emitted before each definition.
	Separator bool
}

// Header returns the column names of the documentation table.
func Header() []string {
	return []string{"name", "type", "format", "required", "description"}
}

// Record renders the row as table cells in Header order. Separator rows
// render as empty cells.
func (r Row) Record() []string {
	if r.Separator {
		return []string{"", "", "", "", ""}
	}
	req := ""
	if r.Required {
		req = RequiredMarker
	}
	return []string{r.Path, r.Type, r.Format, req, r.Description}
}

var formatCodes = map[string]string{
	"uri":       "RFC3987",
	"date-time": "RFC3339",
	"date":      "ISO8601",
}

// FormatCode maps a JSON Schema format to the standard documenting it.
// Unknown and empty formats map to "".
func FormatCode(format string) string {
	return formatCodes[format]
}
